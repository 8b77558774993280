package models

import "time"

// PaymentStatus tracks the settlement state of a mission payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Payment is the single settlement record for a completed mission.
type Payment struct {
	ID        string `bson:"id" json:"id"`
	MissionID string `bson:"missionId" json:"missionId"`
	UserID    string `bson:"userId" json:"userId"`

	Amount          float64 `bson:"amount" json:"amount"`
	PlatformFee     float64 `bson:"platformFee" json:"platformFee"`
	ProviderEarning float64 `bson:"providerEarning" json:"providerEarning"`

	// Stripe PaymentIntent reference and its client secret.
	StripePaymentID    string `bson:"stripePaymentId" json:"-"`
	StripeClientSecret string `bson:"stripeClientSecret,omitempty" json:"-"`

	Status    PaymentStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Earnings is the aggregate earnings report for a provider.
type Earnings struct {
	TotalEarnings     float64 `json:"totalEarnings"`
	PaidEarnings      float64 `json:"paidEarnings"`
	PendingEarnings   float64 `json:"pendingEarnings"`
	CurrentBalance    float64 `json:"currentBalance"`
	CompletedMissions int     `json:"completedMissions"`
}
