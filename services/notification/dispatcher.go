package notification

import (
	"context"

	notificationRepo "errandly/database/repository/notification"
	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users         userRepo.UserRepository
	Notifications notificationRepo.NotificationRepository
	Push          PushSender
}

// Dispatch delivers one event: a best-effort push when the recipient has
// a registered FCM token, and an in-app history record. The two effects
// are independent; either failing is logged and swallowed.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, event Event) {
	logger := utils.GetLogger()

	recipient, err := s.Users.GetByID(event.RecipientID)
	if err != nil {
		logger.Warn("notification: recipient lookup failed",
			zap.String("userId", event.RecipientID), zap.Error(err))
		return
	}

	if recipient.FCMToken != "" && s.Push != nil {
		if err := s.Push.Send(ctx, recipient.FCMToken, event.Title, event.Body, event.Data); err != nil {
			logger.Warn("notification: push send failed",
				zap.String("userId", event.RecipientID),
				zap.String("kind", string(event.Kind)),
				zap.Error(err))
		}
	}

	record := &models.Notification{
		ID:     uuid.New().String(),
		UserID: event.RecipientID,
		Type:   string(event.Kind),
		Title:  event.Title,
		Body:   event.Body,
		Data:   event.Data,
	}
	if err := s.Notifications.Create(record); err != nil {
		logger.Warn("notification: record append failed",
			zap.String("userId", event.RecipientID),
			zap.String("kind", string(event.Kind)),
			zap.Error(err))
	}
}

// DispatchAll delivers a batch of events in order.
func (s *DefaultNotificationService) DispatchAll(ctx context.Context, events []Event) {
	for _, event := range events {
		s.Dispatch(ctx, event)
	}
}

// ListForUser returns a user's notification history, newest first.
func (s *DefaultNotificationService) ListForUser(userID string) ([]models.Notification, error) {
	return s.Notifications.ListForUser(userID)
}

// MarkRead flags one of the user's notifications as read.
func (s *DefaultNotificationService) MarkRead(id, userID string) error {
	return s.Notifications.MarkRead(id, userID)
}
