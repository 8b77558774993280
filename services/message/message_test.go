package message

import (
	"context"
	"sync"
	"testing"
	"time"

	"errandly/database/repository/memory"
	"errandly/models"
	"errandly/services/notification"
	"errandly/utils"
)

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

func newTestService(store *memory.Store) (*DefaultMessageService, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	svc := &DefaultMessageService{
		Messages:   store.Messages(),
		Missions:   store.Missions(),
		Users:      store.Users(),
		Dispatcher: dispatcher,
	}
	return svc, dispatcher
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

func seedMission(t *testing.T, store *memory.Store, id, clientID, providerID string) {
	t.Helper()
	m := &models.Mission{
		ID:       id,
		ClientID: clientID,
		Title:    "Mission " + id,
		Status:   models.MissionPending,
	}
	if providerID != "" {
		m.Status = models.MissionAccepted
		m.Assignment = &models.Assignment{ProviderID: providerID, AcceptedAt: time.Now()}
	}
	if err := store.Missions().Create(m); err != nil {
		t.Fatal(err)
	}
}

func TestSendMessage(t *testing.T) {
	store := memory.NewStore()
	svc, dispatcher := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", "client-1", "provider-1")

	msg, err := svc.Send(context.Background(), "client-1", "m1", "Bonjour")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if msg.ReceiverID != "provider-1" {
		t.Errorf("receiver = %s, want provider-1", msg.ReceiverID)
	}
	if msg.IsRead {
		t.Error("new message must start unread")
	}
	if msg.Sender == nil || msg.Sender.ID != "client-1" {
		t.Error("sender summary not attached")
	}

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if len(dispatcher.events) != 1 ||
		dispatcher.events[0].Kind != notification.NewMessage ||
		dispatcher.events[0].RecipientID != "provider-1" {
		t.Errorf("receiver was not notified: %+v", dispatcher.events)
	}
}

func TestSendMessageGuards(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedUser(t, store, "stranger", models.RoleClient)
	seedMission(t, store, "m1", "client-1", "provider-1")
	seedMission(t, store, "unassigned", "client-1", "")

	ctx := context.Background()
	if _, err := svc.Send(ctx, "client-1", "m1", "   "); !utils.IsValidation(err) {
		t.Errorf("expected validation error on blank content, got %v", err)
	}
	if _, err := svc.Send(ctx, "client-1", "missing", "Bonjour"); !utils.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := svc.Send(ctx, "stranger", "m1", "Bonjour"); !utils.IsPermission(err) {
		t.Errorf("expected permission error, got %v", err)
	}
	if _, err := svc.Send(ctx, "client-1", "unassigned", "Bonjour"); !utils.IsConflict(err) {
		t.Errorf("expected conflict on unassigned mission, got %v", err)
	}
}

func TestListForMissionMarksRead(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedMission(t, store, "m1", "client-1", "provider-1")

	ctx := context.Background()
	if _, err := svc.Send(ctx, "client-1", "m1", "Bonjour"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Send(ctx, "provider-1", "m1", "Salut"); err != nil {
		t.Fatal(err)
	}

	count, err := svc.UnreadCount("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("unread = %d, want 1", count)
	}

	messages, err := svc.ListForMission("m1", "provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Content != "Bonjour" {
		t.Errorf("messages not oldest first: %+v", messages)
	}

	// Reading the thread cleared the provider's unread counter, but not
	// the client's.
	count, err = svc.UnreadCount("provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("unread = %d after read, want 0", count)
	}
	count, err = svc.UnreadCount("client-1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("client unread = %d, want 1", count)
	}
}

func TestListForMissionGuards(t *testing.T) {
	store := memory.NewStore()
	svc, _ := newTestService(store)
	seedUser(t, store, "client-1", models.RoleClient)
	seedUser(t, store, "provider-1", models.RoleProvider)
	seedUser(t, store, "stranger", models.RoleClient)
	seedMission(t, store, "m1", "client-1", "provider-1")

	if _, err := svc.ListForMission("missing", "client-1"); !utils.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := svc.ListForMission("m1", "stranger"); !utils.IsPermission(err) {
		t.Errorf("expected permission error, got %v", err)
	}
}
