package payment

import (
	"context"

	missionRepo "errandly/database/repository/mission"
	paymentRepo "errandly/database/repository/payment"
	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/services/notification"
)

// IntentResult is returned by CreateIntent: the stored payment row plus
// the client secret the mobile app needs to confirm the intent.
type IntentResult struct {
	Payment      *models.Payment `json:"payment"`
	ClientSecret string          `json:"clientSecret"`
}

// PaymentService orchestrates post-completion settlement.
type PaymentService interface {
	// CreateIntent opens a payment hold with the processor for a
	// completed mission and records the PENDING payment.
	CreateIntent(ctx context.Context, missionID, clientID string) (*IntentResult, error)
	// Confirm verifies the intent succeeded, marks the payment COMPLETED
	// and credits the provider's balance.
	Confirm(ctx context.Context, paymentID string) (*models.Payment, error)
	// RequestPayout withdraws amount from the provider's balance.
	RequestPayout(providerID string, amount float64) error
	// HandleWebhookEvent routes processor webhook events.
	HandleWebhookEvent(ctx context.Context, eventType, stripePaymentID string) error
	// GetByMissionID returns a mission's payment to one of its parties.
	GetByMissionID(missionID, userID string) (*models.Payment, error)
	// History returns the payer's payments, newest first.
	History(userID string) ([]models.Payment, error)
	// Earnings aggregates a provider's earnings over completed missions.
	Earnings(providerID string) (*models.Earnings, error)
}

// ProcessorClient is the narrow contract consumed from the external
// payment processor.
type ProcessorClient interface {
	// CreateCustomer registers the payer and returns the customer reference.
	CreateCustomer(ctx context.Context, email, name, userID string) (string, error)
	// CreateIntent opens a hold for amount (minor units) and returns the
	// intent reference and its client secret.
	CreateIntent(ctx context.Context, amount int64, currency, customerRef, description string, metadata map[string]string) (ref, clientSecret string, err error)
	// IntentSucceeded reports whether the referenced intent has succeeded.
	IntentSucceeded(ctx context.Context, ref string) (bool, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Payments   paymentRepo.PaymentRepository
	Missions   missionRepo.MissionRepository
	Users      userRepo.UserRepository
	Processor  ProcessorClient
	Dispatcher notification.Dispatcher
}
