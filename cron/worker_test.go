package cron

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"errandly/database/repository/memory"
	"errandly/models"
	"errandly/services/notification"

	"github.com/hibiken/asynq"
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

func reminderTask(t *testing.T, missionID, clientID string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(paymentReminderPayload{MissionID: missionID, ClientID: clientID})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(TypePaymentReminder, b)
}

func seedCompletedMission(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	now := time.Now()
	err := store.Missions().Create(&models.Mission{
		ID:          id,
		ClientID:    "client-1",
		Title:       "Courses",
		Status:      models.MissionCompleted,
		Assignment:  &models.Assignment{ProviderID: "provider-1", AcceptedAt: now},
		CompletedAt: &now,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestPaymentReminderNudgesUnpaidMission(t *testing.T) {
	store := memory.NewStore()
	dispatcher := &recordingDispatcher{}
	handler := handlePaymentReminder(store.Missions(), store.Payments(), dispatcher)
	seedCompletedMission(t, store, "m1")

	if err := handler(context.Background(), reminderTask(t, "m1", "client-1")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if len(dispatcher.events) != 1 {
		t.Fatalf("got %d events, want 1", len(dispatcher.events))
	}
	event := dispatcher.events[0]
	if event.Kind != notification.PaymentReminder || event.RecipientID != "client-1" {
		t.Errorf("event = %+v", event)
	}
}

func TestPaymentReminderSkipsSettledMission(t *testing.T) {
	store := memory.NewStore()
	dispatcher := &recordingDispatcher{}
	handler := handlePaymentReminder(store.Missions(), store.Payments(), dispatcher)
	seedCompletedMission(t, store, "m1")

	if err := store.Payments().Create(&models.Payment{
		ID:        "p1",
		MissionID: "m1",
		UserID:    "client-1",
		Status:    models.PaymentPending,
	}); err != nil {
		t.Fatal(err)
	}

	if err := handler(context.Background(), reminderTask(t, "m1", "client-1")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(dispatcher.events) != 0 {
		t.Errorf("nudged a settled mission: %+v", dispatcher.events)
	}
}

func TestPaymentReminderSkipsGoneMissions(t *testing.T) {
	store := memory.NewStore()
	dispatcher := &recordingDispatcher{}
	handler := handlePaymentReminder(store.Missions(), store.Payments(), dispatcher)

	// Deleted mission: the reminder is stale, not an error.
	if err := handler(context.Background(), reminderTask(t, "gone", "client-1")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	// Missions that left the COMPLETED state are left alone.
	seedCompletedMission(t, store, "m1")
	if err := store.Missions().MarkCancelled("m1"); err != nil {
		t.Fatal(err)
	}
	if err := handler(context.Background(), reminderTask(t, "m1", "client-1")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if len(dispatcher.events) != 0 {
		t.Errorf("unexpected events: %+v", dispatcher.events)
	}
}
