package mission

import (
	"context"
	"sync"
	"testing"

	"errandly/database/repository/memory"
	"errandly/models"
	"errandly/services/matching"
	"errandly/services/notification"
	"errandly/utils"
)

// recordingDispatcher captures emitted events instead of delivering them.
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

func (d *recordingDispatcher) byKind(kind notification.EventKind) []notification.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []notification.Event
	for _, event := range d.events {
		if event.Kind == kind {
			out = append(out, event)
		}
	}
	return out
}

func newTestService(store *memory.Store) (*DefaultMissionService, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	svc := &DefaultMissionService{
		Repo:        store.Missions(),
		UserRepo:    store.Users(),
		MessageRepo: store.Messages(),
		RatingRepo:  store.Ratings(),
		PaymentRepo: store.Payments(),
		Matcher: &matching.DefaultMatchingService{
			MissionRepo: store.Missions(),
			UserRepo:    store.Users(),
		},
		Dispatcher: dispatcher,
	}
	return svc, dispatcher
}

func seedUser(t *testing.T, store *memory.Store, id string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: "Test",
		LastName:  id,
		Role:      role,
		Status:    models.UserActive,
	}
	if err := store.Users().Create(u); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return u
}

func seedProvider(t *testing.T, store *memory.Store, id string, lat, lon float64) *models.User {
	t.Helper()
	u := &models.User{
		ID:               id,
		Email:            id + "@example.com",
		FirstName:        "Test",
		LastName:         id,
		Role:             models.RoleProvider,
		Status:           models.UserActive,
		IsAvailable:      true,
		FCMToken:         "token-" + id,
		CurrentLatitude:  &lat,
		CurrentLongitude: &lon,
	}
	if err := store.Users().Create(u); err != nil {
		t.Fatalf("seed provider %s: %v", id, err)
	}
	return u
}

func floatPtr(v float64) *float64 { return &v }

func validInput() CreateMissionInput {
	return CreateMissionInput{
		Title:           "Courses au supermarché",
		Description:     "Acheter la liste de courses",
		Category:        "SHOPPING",
		PickupAddress:   "12 rue de la Paix, Paris",
		PickupLatitude:  floatPtr(48.8566),
		PickupLongitude: floatPtr(2.3522),
		ClientPrice:     50,
	}
}

func TestCreateMission(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)

	m, err := svc.Create(context.Background(), "client-1", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if m.Status != models.MissionPending {
		t.Errorf("status = %s, want PENDING", m.Status)
	}
	if m.Urgency != models.UrgencyMedium {
		t.Errorf("urgency = %s, want default MEDIUM", m.Urgency)
	}
	if m.Assignment != nil {
		t.Error("new mission must not carry an assignment")
	}
	if m.PlatformFee != 7.5 || m.ProviderEarning != 42.5 {
		t.Errorf("fee split = %f/%f, want 7.5/42.5", m.PlatformFee, m.ProviderEarning)
	}
}

func TestCreateMissionValidation(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)

	tests := []struct {
		name   string
		mutate func(*CreateMissionInput)
	}{
		{"empty title", func(in *CreateMissionInput) { in.Title = "  " }},
		{"empty description", func(in *CreateMissionInput) { in.Description = "" }},
		{"empty category", func(in *CreateMissionInput) { in.Category = "" }},
		{"empty pickup address", func(in *CreateMissionInput) { in.PickupAddress = "" }},
		{"price below minimum", func(in *CreateMissionInput) { in.ClientPrice = 0.99 }},
		{"unknown urgency", func(in *CreateMissionInput) { in.Urgency = "IMMEDIATELY" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), "client-1", input)
			if !utils.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateMissionRequiresClientRole(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedProvider(t, store, "provider-1", 48.8566, 2.3522)

	_, err := svc.Create(context.Background(), "provider-1", validInput())
	if !utils.IsPermission(err) {
		t.Errorf("expected permission error, got %v", err)
	}
}

func TestCreateMissionFanOut(t *testing.T) {
	store := memory.NewStore()
	svc, dispatcher := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedProvider(t, store, "provider-near", 48.8570, 2.3530)
	seedProvider(t, store, "provider-far", 43.2965, 5.3698) // Marseille

	// An unavailable provider next door must not be alerted.
	unavailable := seedProvider(t, store, "provider-off", 48.8570, 2.3530)
	unavailable.IsAvailable = false
	if err := store.Users().Update(unavailable); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Create(context.Background(), "client-1", validInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	alerts := dispatcher.byKind(notification.NewMission)
	if len(alerts) != 1 {
		t.Fatalf("got %d new-mission alerts, want 1", len(alerts))
	}
	if alerts[0].RecipientID != "provider-near" {
		t.Errorf("alert went to %s, want provider-near", alerts[0].RecipientID)
	}
}

func TestGetByIDAuthorization(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "stranger", models.RoleClient)
	seedUser(t, store, "admin", models.RoleAdmin)

	m, err := svc.Create(context.Background(), "client-1", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.GetByID(m.ID, "client-1"); err != nil {
		t.Errorf("client access: %v", err)
	}
	if _, err := svc.GetByID(m.ID, "admin"); err != nil {
		t.Errorf("admin access: %v", err)
	}
	if _, err := svc.GetByID(m.ID, "stranger"); !utils.IsPermission(err) {
		t.Errorf("expected permission error for stranger, got %v", err)
	}
	if _, err := svc.GetByID("missing", "client-1"); !utils.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListUserMissions(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "client-2", models.RoleClient)
	seedProvider(t, store, "provider-1", 48.8566, 2.3522)

	m1, err := svc.Create(context.Background(), "client-1", validInput())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(context.Background(), "client-2", validInput()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Accept(context.Background(), m1.ID, "provider-1"); err != nil {
		t.Fatal(err)
	}

	clientMissions, err := svc.ListUserMissions("client-1", models.RoleClient, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(clientMissions) != 1 || clientMissions[0].ID != m1.ID {
		t.Errorf("client list = %d missions, want only %s", len(clientMissions), m1.ID)
	}

	providerMissions, err := svc.ListUserMissions("provider-1", models.RoleProvider, models.MissionAccepted)
	if err != nil {
		t.Fatal(err)
	}
	if len(providerMissions) != 1 || providerMissions[0].ID != m1.ID {
		t.Errorf("provider list = %d missions, want only %s", len(providerMissions), m1.ID)
	}
}
