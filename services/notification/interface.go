package notification

import (
	"context"

	"errandly/models"
)

// EventKind tags the lifecycle event behind a notification.
type EventKind string

const (
	NewMission       EventKind = "NEW_MISSION"
	MissionAccepted  EventKind = "MISSION_ACCEPTED"
	MissionStarted   EventKind = "MISSION_STARTED"
	MissionCompleted EventKind = "MISSION_COMPLETED"
	MissionCancelled EventKind = "MISSION_CANCELLED"
	PaymentReceived  EventKind = "PAYMENT_RECEIVED"
	PaymentReminder  EventKind = "PAYMENT_REMINDER"
	NewMessage       EventKind = "NEW_MESSAGE"
)

// Event is one "notify X about Y" effect emitted by a lifecycle
// transition. Emitting and delivering are decoupled: transitions build
// events, the dispatcher delivers them best-effort.
type Event struct {
	Kind        EventKind
	RecipientID string
	Title       string
	Body        string
	Data        map[string]string
}

// Dispatcher consumes lifecycle events. Delivery is fire-and-forget:
// implementations log failures and never propagate them, so a failed
// push can never roll back the transition that produced it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event)
	DispatchAll(ctx context.Context, events []Event)
}

// PushSender abstracts the external push gateway.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// NotificationService is the full service surface: event dispatch plus
// the in-app history reads.
type NotificationService interface {
	Dispatcher
	ListForUser(userID string) ([]models.Notification, error)
	MarkRead(id, userID string) error
}
