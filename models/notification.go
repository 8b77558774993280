package models

import "time"

// Notification is one entry of a user's in-app alert history.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Type      string            `bson:"type" json:"type"`
	Title     string            `bson:"title" json:"title"`
	Body      string            `bson:"body" json:"body"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	IsRead    bool              `bson:"isRead" json:"isRead"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
