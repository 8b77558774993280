package mission

import (
	"context"
	"testing"

	"errandly/database/repository/memory"
	"errandly/models"
	"errandly/services/matching"
	"errandly/services/payment"
	"errandly/services/rating"
)

type flowProcessor struct{}

func (flowProcessor) CreateCustomer(_ context.Context, _, _, _ string) (string, error) {
	return "cus_flow", nil
}

func (flowProcessor) CreateIntent(_ context.Context, _ int64, _, _, _ string, _ map[string]string) (string, string, error) {
	return "pi_flow", "pi_flow_secret", nil
}

func (flowProcessor) IntentSucceeded(_ context.Context, _ string) (bool, error) {
	return true, nil
}

// TestFullMissionFlow walks a 50€ errand from posting to payout:
// create, discover, accept, start, complete, pay, rate, withdraw.
func TestFullMissionFlow(t *testing.T) {
	store := memory.NewStore()
	missionSvc, dispatcher := newTestService(store)
	paymentSvc := &payment.DefaultPaymentService{
		Payments:   store.Payments(),
		Missions:   store.Missions(),
		Users:      store.Users(),
		Processor:  flowProcessor{},
		Dispatcher: dispatcher,
	}
	ratingSvc := &rating.DefaultRatingService{
		Ratings:  store.Ratings(),
		Missions: store.Missions(),
		Users:    store.Users(),
	}
	matcher := &matching.DefaultMatchingService{
		MissionRepo: store.Missions(),
		UserRepo:    store.Users(),
	}

	seedUser(t, store, "client-1", models.RoleClient)
	seedProvider(t, store, "provider-1", 48.8570, 2.3530)
	ctx := context.Background()

	// The client posts a 50€ errand.
	m, err := missionSvc.Create(ctx, "client-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The provider discovers it nearby.
	nearby, err := matcher.NearbyMissions("provider-1", 48.8570, 2.3530, 10)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(nearby) != 1 || nearby[0].ID != m.ID {
		t.Fatalf("mission not discoverable: %+v", nearby)
	}

	// Accept, start, complete.
	if _, err := missionSvc.Accept(ctx, m.ID, "provider-1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := missionSvc.Start(ctx, m.ID, "provider-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := missionSvc.Complete(ctx, m.ID, "provider-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// The client settles: 7.50€ platform fee, 42.50€ to the provider.
	result, err := paymentSvc.CreateIntent(ctx, m.ID, "client-1")
	if err != nil {
		t.Fatalf("intent: %v", err)
	}
	if result.Payment.PlatformFee != 7.5 || result.Payment.ProviderEarning != 42.5 {
		t.Fatalf("split = %f/%f, want 7.5/42.5",
			result.Payment.PlatformFee, result.Payment.ProviderEarning)
	}
	if _, err := paymentSvc.Confirm(ctx, result.Payment.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	provider, err := store.Users().GetByID("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.Balance != 42.5 {
		t.Fatalf("balance = %f, want 42.5", provider.Balance)
	}

	// The client rates the provider.
	if _, err := ratingSvc.Create("client-1", m.ID, 5, "Parfait"); err != nil {
		t.Fatalf("rate: %v", err)
	}
	provider, err = store.Users().GetByID("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.AverageRating != 5 {
		t.Errorf("average = %f, want 5", provider.AverageRating)
	}

	// The provider withdraws everything.
	if err := paymentSvc.RequestPayout("provider-1", 42.5); err != nil {
		t.Fatalf("payout: %v", err)
	}
	provider, err = store.Users().GetByID("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.Balance != 0 {
		t.Errorf("balance = %f after payout, want 0", provider.Balance)
	}

	// The full detail view shows provider, payment and rating.
	detail, err := missionSvc.GetByID(m.ID, "client-1")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Provider == nil || detail.Provider.ID != "provider-1" {
		t.Error("detail missing provider")
	}
	if detail.Payment == nil || detail.Payment.Status != models.PaymentCompleted {
		t.Error("detail missing completed payment")
	}
	if detail.Rating == nil || detail.Rating.Score != 5 {
		t.Error("detail missing rating")
	}
}
