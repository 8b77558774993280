package messageRepo

import "errandly/models"

// MessageRepository defines methods for chat message data access.
type MessageRepository interface {
	// Create inserts a new message record.
	Create(message *models.Message) error
	// ListForMission returns a mission's messages, oldest first.
	ListForMission(missionID string) ([]models.Message, error)
	// MarkRead flags all of receiver's unread messages in a mission as read.
	MarkRead(missionID, receiverID string) error
	// CountUnread counts unread messages addressed to the user.
	CountUnread(receiverID string) (int64, error)
}
