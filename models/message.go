package models

import "time"

// Message is a chat message between the two parties of a mission.
type Message struct {
	ID         string    `bson:"id" json:"id"`
	MissionID  string    `bson:"missionId" json:"missionId"`
	SenderID   string    `bson:"senderId" json:"senderId"`
	ReceiverID string    `bson:"receiverId" json:"receiverId"`
	Content    string    `bson:"content" json:"content"`
	IsRead     bool      `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`

	Sender *UserSummary `bson:"-" json:"sender,omitempty"`
}
