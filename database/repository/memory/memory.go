// Package memory provides in-memory implementations of the repository
// interfaces. They back the service tests and can run the server without
// a MongoDB instance.
package memory

import (
	"sync"

	"errandly/models"
)

// Store holds all records behind one mutex. The mutex is what gives
// AcceptPending the same check-and-set atomicity the Mongo repos get from
// a conditional FindOneAndUpdate.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*models.User
	missions      map[string]*models.Mission
	missionOrder  []string
	payments      map[string]*models.Payment
	messages      []*models.Message
	ratings       map[string]*models.Rating
	notifications []*models.Notification
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		missions: make(map[string]*models.Mission),
		payments: make(map[string]*models.Payment),
		ratings:  make(map[string]*models.Rating),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Missions returns the mission repository view of the store.
func (s *Store) Missions() *MissionRepo { return &MissionRepo{s: s} }

// Payments returns the payment repository view of the store.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

// Messages returns the message repository view of the store.
func (s *Store) Messages() *MessageRepo { return &MessageRepo{s: s} }

// Ratings returns the rating repository view of the store.
func (s *Store) Ratings() *RatingRepo { return &RatingRepo{s: s} }

// Notifications returns the notification repository view of the store.
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func cloneMission(m *models.Mission) *models.Mission {
	c := *m
	if m.Assignment != nil {
		a := *m.Assignment
		c.Assignment = &a
	}
	return &c
}

func clonePayment(p *models.Payment) *models.Payment {
	c := *p
	return &c
}
