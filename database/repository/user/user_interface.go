package userRepo

import (
	"errors"

	"errandly/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// IncrementBalance atomically adds delta to a user's balance.
	// A negative delta withdraws; callers validate bounds first.
	IncrementBalance(id string, delta float64) error
	// SetRatingStats overwrites the denormalized rating aggregate.
	SetRatingStats(id string, average float64, total int) error
	// ListAvailableProviders returns ACTIVE, available providers with a
	// known location and a registered FCM token.
	ListAvailableProviders() ([]models.User, error)
}
