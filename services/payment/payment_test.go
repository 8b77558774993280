package payment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"errandly/database/repository/memory"
	"errandly/models"
	"errandly/services/notification"
	"errandly/utils"
)

// fakeProcessor stands in for Stripe.
type fakeProcessor struct {
	mu        sync.Mutex
	succeeded bool
	customers int
	intents   int
}

func (f *fakeProcessor) CreateCustomer(_ context.Context, _, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers++
	return fmt.Sprintf("cus_test_%d", f.customers), nil
}

func (f *fakeProcessor) CreateIntent(_ context.Context, _ int64, _, _, _ string, _ map[string]string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents++
	ref := fmt.Sprintf("pi_test_%d", f.intents)
	return ref, ref + "_secret", nil
}

func (f *fakeProcessor) IntentSucceeded(_ context.Context, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.succeeded, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event notification.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) DispatchAll(ctx context.Context, events []notification.Event) {
	for _, event := range events {
		d.Dispatch(ctx, event)
	}
}

func newTestService(store *memory.Store) (*DefaultPaymentService, *fakeProcessor, *recordingDispatcher) {
	processor := &fakeProcessor{succeeded: true}
	dispatcher := &recordingDispatcher{}
	svc := &DefaultPaymentService{
		Payments:   store.Payments(),
		Missions:   store.Missions(),
		Users:      store.Users(),
		Processor:  processor,
		Dispatcher: dispatcher,
	}
	return svc, processor, dispatcher
}

func seedUser(t *testing.T, store *memory.Store, id string, role models.UserRole) {
	t.Helper()
	err := store.Users().Create(&models.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: "Test",
		LastName:  id,
		Role:      role,
		Status:    models.UserActive,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func seedMission(t *testing.T, store *memory.Store, id string, status models.MissionStatus) {
	t.Helper()
	now := time.Now()
	fee, earning := CalculateFees(50)
	m := &models.Mission{
		ID:              id,
		ClientID:        "client-1",
		Title:           "Mission " + id,
		Status:          status,
		ClientPrice:     50,
		PlatformFee:     fee,
		ProviderEarning: earning,
	}
	if status != models.MissionPending {
		m.Assignment = &models.Assignment{ProviderID: "provider-1", AcceptedAt: now}
	}
	if err := store.Missions().Create(m); err != nil {
		t.Fatal(err)
	}
}

func TestCreateIntent(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", models.MissionCompleted)

	result, err := svc.CreateIntent(context.Background(), "m1", "client-1")
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}

	if result.Payment.Status != models.PaymentPending {
		t.Errorf("status = %s, want PENDING", result.Payment.Status)
	}
	if result.Payment.Amount != 50 || result.Payment.ProviderEarning != 42.5 {
		t.Errorf("amounts = %f/%f, want 50/42.5",
			result.Payment.Amount, result.Payment.ProviderEarning)
	}
	if result.ClientSecret == "" {
		t.Error("client secret missing")
	}

	// The Stripe customer reference is stored for reuse.
	client, err := store.Users().GetByID("client-1")
	if err != nil {
		t.Fatal(err)
	}
	if client.StripeCustomerID == "" {
		t.Error("customer reference not stored on the client")
	}
}

func TestCreateIntentReusesCustomer(t *testing.T) {
	store := memory.NewStore()
	svc, processor, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", models.MissionCompleted)
	seedMission(t, store, "m2", models.MissionCompleted)

	ctx := context.Background()
	if _, err := svc.CreateIntent(ctx, "m1", "client-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateIntent(ctx, "m2", "client-1"); err != nil {
		t.Fatal(err)
	}
	if processor.customers != 1 {
		t.Errorf("created %d customers, want 1", processor.customers)
	}
}

func TestCreateIntentGuards(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedUser(t, store, "stranger", models.RoleClient)
	seedMission(t, store, "running", models.MissionInProgress)
	seedMission(t, store, "done", models.MissionCompleted)

	ctx := context.Background()
	if _, err := svc.CreateIntent(ctx, "missing", "client-1"); !utils.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := svc.CreateIntent(ctx, "done", "stranger"); !utils.IsPermission(err) {
		t.Errorf("expected permission error, got %v", err)
	}
	if _, err := svc.CreateIntent(ctx, "running", "client-1"); !utils.IsConflict(err) {
		t.Errorf("expected conflict before completion, got %v", err)
	}

	// At most one payment per mission.
	if _, err := svc.CreateIntent(ctx, "done", "client-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateIntent(ctx, "done", "client-1"); !utils.IsConflict(err) {
		t.Errorf("expected conflict on duplicate, got %v", err)
	}
}

func TestConfirmCreditsProvider(t *testing.T) {
	store := memory.NewStore()
	svc, _, dispatcher := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", models.MissionCompleted)

	ctx := context.Background()
	result, err := svc.CreateIntent(ctx, "m1", "client-1")
	if err != nil {
		t.Fatal(err)
	}

	p, err := svc.Confirm(ctx, result.Payment.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if p.Status != models.PaymentCompleted {
		t.Errorf("status = %s, want COMPLETED", p.Status)
	}

	provider, err := store.Users().GetByID("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.Balance != 42.5 {
		t.Errorf("balance = %f, want 42.5", provider.Balance)
	}

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if len(dispatcher.events) != 1 ||
		dispatcher.events[0].Kind != notification.PaymentReceived ||
		dispatcher.events[0].RecipientID != "provider-1" {
		t.Errorf("provider was not notified: %+v", dispatcher.events)
	}
}

func TestConfirmIsNotRepeatable(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", models.MissionCompleted)

	ctx := context.Background()
	result, err := svc.CreateIntent(ctx, "m1", "client-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(ctx, result.Payment.ID); err != nil {
		t.Fatal(err)
	}

	// A second confirmation must not credit the balance again.
	if _, err := svc.Confirm(ctx, result.Payment.ID); !utils.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
	provider, err := store.Users().GetByID("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.Balance != 42.5 {
		t.Errorf("balance = %f, want 42.5 after double confirm", provider.Balance)
	}
}

func TestConfirmRequiresProcessorSuccess(t *testing.T) {
	store := memory.NewStore()
	svc, processor, _ := newTestService(store)
	processor.succeeded = false
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", models.MissionCompleted)

	ctx := context.Background()
	result, err := svc.CreateIntent(ctx, "m1", "client-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(ctx, result.Payment.ID); !utils.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	p, err := store.Payments().GetByID(result.Payment.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != models.PaymentPending {
		t.Errorf("status = %s, must stay PENDING", p.Status)
	}
}

func TestRequestPayout(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	if err := store.Users().IncrementBalance("provider-1", 42.5); err != nil {
		t.Fatal(err)
	}

	if err := svc.RequestPayout("client-1", 20); !utils.IsPermission(err) {
		t.Errorf("expected permission error for client, got %v", err)
	}
	if err := svc.RequestPayout("provider-1", 5); !utils.IsValidation(err) {
		t.Errorf("expected validation error below minimum, got %v", err)
	}
	if err := svc.RequestPayout("provider-1", 100); !utils.IsValidation(err) {
		t.Errorf("expected validation error above balance, got %v", err)
	}

	if err := svc.RequestPayout("provider-1", 42.5); err != nil {
		t.Fatalf("RequestPayout: %v", err)
	}
	provider, err := store.Users().GetByID("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.Balance != 0 {
		t.Errorf("balance = %f, want 0", provider.Balance)
	}
}

func TestHandleWebhookEvent(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", models.MissionCompleted)

	ctx := context.Background()
	result, err := svc.CreateIntent(ctx, "m1", "client-1")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.HandleWebhookEvent(ctx, "payment_intent.succeeded", result.Payment.StripePaymentID); err != nil {
		t.Fatalf("HandleWebhookEvent: %v", err)
	}
	p, err := store.Payments().GetByID(result.Payment.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != models.PaymentCompleted {
		t.Errorf("status = %s, want COMPLETED", p.Status)
	}

	// Redelivery of the same event is a no-op.
	if err := svc.HandleWebhookEvent(ctx, "payment_intent.succeeded", result.Payment.StripePaymentID); err != nil {
		t.Errorf("redelivered event: %v", err)
	}
	provider, err := store.Users().GetByID("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.Balance != 42.5 {
		t.Errorf("balance = %f, want 42.5 after redelivery", provider.Balance)
	}

	// Unknown intents and unknown event types are ignored.
	if err := svc.HandleWebhookEvent(ctx, "payment_intent.succeeded", "pi_unknown"); err != nil {
		t.Errorf("unknown intent: %v", err)
	}
	if err := svc.HandleWebhookEvent(ctx, "charge.refunded", "pi_unknown"); err != nil {
		t.Errorf("unknown type: %v", err)
	}
}

func TestHandleWebhookFailureMarksPayment(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", models.MissionCompleted)

	ctx := context.Background()
	result, err := svc.CreateIntent(ctx, "m1", "client-1")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.HandleWebhookEvent(ctx, "payment_intent.payment_failed", result.Payment.StripePaymentID); err != nil {
		t.Fatalf("HandleWebhookEvent: %v", err)
	}
	p, err := store.Payments().GetByID(result.Payment.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != models.PaymentFailed {
		t.Errorf("status = %s, want FAILED", p.Status)
	}
}

func TestEarnings(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "paid", models.MissionCompleted)
	seedMission(t, store, "unpaid", models.MissionCompleted)

	ctx := context.Background()
	result, err := svc.CreateIntent(ctx, "paid", "client-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(ctx, result.Payment.ID); err != nil {
		t.Fatal(err)
	}

	report, err := svc.Earnings("provider-1")
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if report.TotalEarnings != 85 {
		t.Errorf("total = %f, want 85", report.TotalEarnings)
	}
	if report.PaidEarnings != 42.5 {
		t.Errorf("paid = %f, want 42.5", report.PaidEarnings)
	}
	if report.PendingEarnings != 42.5 {
		t.Errorf("pending = %f, want 42.5", report.PendingEarnings)
	}
	if report.CurrentBalance != 42.5 {
		t.Errorf("balance = %f, want 42.5", report.CurrentBalance)
	}
	if report.CompletedMissions != 2 {
		t.Errorf("completed = %d, want 2", report.CompletedMissions)
	}

	if _, err := svc.Earnings("client-1"); !utils.IsPermission(err) {
		t.Errorf("expected permission error for client, got %v", err)
	}
}

func TestGetByMissionID(t *testing.T) {
	store := memory.NewStore()
	svc, _, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedUser(t, store, "stranger", models.RoleClient)
	seedMission(t, store, "m1", models.MissionCompleted)

	result, err := svc.CreateIntent(context.Background(), "m1", "client-1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetByMissionID("m1", "provider-1"); err != nil {
		t.Errorf("provider access: %v", err)
	}
	if _, err := svc.GetByMissionID("m1", "stranger"); !utils.IsPermission(err) {
		t.Errorf("expected permission error, got %v", err)
	}
	if _, err := svc.GetByMissionID("missing", "client-1"); !utils.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	p, err := svc.GetByMissionID("m1", "client-1")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != result.Payment.ID {
		t.Errorf("payment = %s, want %s", p.ID, result.Payment.ID)
	}
}
