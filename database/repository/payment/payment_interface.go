package paymentRepo

import (
	"errors"

	"errandly/models"
)

// ErrNotFound is returned when no payment matches the lookup.
var ErrNotFound = errors.New("payment not found")

// PaymentRepository defines methods for payment data access.
type PaymentRepository interface {
	// Create inserts a new payment record.
	Create(payment *models.Payment) error
	// GetByID retrieves a payment by its unique ID.
	GetByID(id string) (*models.Payment, error)
	// GetByMissionID retrieves the (at most one) payment for a mission.
	GetByMissionID(missionID string) (*models.Payment, error)
	// GetByStripeID retrieves the payment by its PaymentIntent reference.
	GetByStripeID(stripePaymentID string) (*models.Payment, error)
	// SetStatus updates the settlement status.
	SetStatus(id string, status models.PaymentStatus) error
	// ListForUser returns a payer's payments, newest first.
	ListForUser(userID string) ([]models.Payment, error)
}
