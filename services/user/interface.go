package user

import (
	userRepo "errandly/database/repository/user"
	"errandly/models"

	"github.com/go-redis/redis/v8"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Phone     string          `json:"phone,omitempty"`
	Role      models.UserRole `json:"role"`
}

// ProfileUpdate carries the mutable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	FirstName      *string  `json:"firstName,omitempty"`
	LastName       *string  `json:"lastName,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	ProfilePicture *string  `json:"profilePicture,omitempty"`
	Address        *string  `json:"address,omitempty"`
	City           *string  `json:"city,omitempty"`
	Country        *string  `json:"country,omitempty"`
	VehicleType    *string  `json:"vehicleType,omitempty"`
	ServiceRadius  *float64 `json:"serviceRadius,omitempty"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService defines business logic for account operations.
type UserService interface {
	// Register validates registration details, creates the account and
	// returns a session token.
	Register(input RegisterInput) (*AuthResponse, error)
	// Login verifies credentials and returns a session token.
	Login(email, password string) (*AuthResponse, error)
	// Logout revokes the user's active session.
	Logout(userID string) error
	// GetByID retrieves a user by its unique ID.
	GetByID(userID string) (*models.User, error)
	// UpdateProfile applies a partial profile update.
	UpdateProfile(userID string, update ProfileUpdate) (*models.User, error)
	// UpdateLocation stores the user's current position.
	UpdateLocation(userID string, latitude, longitude float64) error
	// UpdateAvailability toggles a provider's availability flag.
	UpdateAvailability(userID string, isAvailable bool) error
	// UpdateFCMToken registers the device token for push notifications.
	UpdateFCMToken(userID, fcmToken string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// Sessions holds active token hashes; nil disables revocation checks
	// (tests run without Redis).
	Sessions *redis.Client
}
