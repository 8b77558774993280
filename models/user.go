package models

import "time"

// UserRole identifies which side of the marketplace a user belongs to.
type UserRole string

const (
	RoleClient   UserRole = "CLIENT"
	RoleProvider UserRole = "PROVIDER"
	RoleAdmin    UserRole = "ADMIN"
)

// UserStatus is the account state.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// User represents a platform account, client or provider.
type User struct {
	ID             string     `bson:"id" json:"id"`
	Email          string     `bson:"email" json:"email"`
	Password       string     `bson:"password" json:"-"`
	FirstName      string     `bson:"firstName" json:"firstName"`
	LastName       string     `bson:"lastName" json:"lastName"`
	Phone          string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Role           UserRole   `bson:"role" json:"role"`
	Status         UserStatus `bson:"status" json:"status"`
	ProfilePicture string     `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`

	// Live position, reported by the mobile app.
	CurrentLatitude  *float64 `bson:"currentLatitude,omitempty" json:"currentLatitude,omitempty"`
	CurrentLongitude *float64 `bson:"currentLongitude,omitempty" json:"currentLongitude,omitempty"`

	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`

	// Provider-only fields.
	IsAvailable   bool    `bson:"isAvailable" json:"isAvailable"`
	VehicleType   string  `bson:"vehicleType,omitempty" json:"vehicleType,omitempty"`
	ServiceRadius float64 `bson:"serviceRadius,omitempty" json:"serviceRadius,omitempty"`
	Balance       float64 `bson:"balance" json:"balance"`

	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalRatings  int     `bson:"totalRatings" json:"totalRatings"`

	FCMToken         string `bson:"fcmToken,omitempty" json:"-"`
	StripeCustomerID string `bson:"stripeCustomerId,omitempty" json:"-"`

	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
	LastActiveAt time.Time `bson:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
}

// HasLocation reports whether the user has a known current position.
func (u *User) HasLocation() bool {
	return u.CurrentLatitude != nil && u.CurrentLongitude != nil
}

// UserSummary is the slim view of a user embedded in mission responses.
type UserSummary struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Phone          string  `json:"phone,omitempty"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
	AverageRating  float64 `json:"averageRating"`
}

// Summary projects the user into its embeddable view.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		AverageRating:  u.AverageRating,
	}
}
