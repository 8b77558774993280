package notificationRepo

import "errandly/models"

// NotificationRepository defines methods for the in-app alert history.
type NotificationRepository interface {
	// Create appends a notification record.
	Create(notification *models.Notification) error
	// ListForUser returns a user's notifications, newest first.
	ListForUser(userID string) ([]models.Notification, error)
	// MarkRead flags one of the user's notifications as read.
	MarkRead(id, userID string) error
}
