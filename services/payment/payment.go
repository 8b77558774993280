package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	missionRepo "errandly/database/repository/mission"
	paymentRepo "errandly/database/repository/payment"
	"errandly/models"
	"errandly/services/notification"
	"errandly/utils"

	"github.com/google/uuid"
)

// CreateIntent opens a payment hold for a completed mission. At most one
// payment can ever exist per mission. Processor failures propagate:
// payment correctness is never silently swallowed.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, missionID, clientID string) (*IntentResult, error) {
	m, err := s.Missions.GetByID(missionID)
	if err != nil {
		if errors.Is(err, missionRepo.ErrNotFound) {
			return nil, utils.NotFoundError("mission not found")
		}
		return nil, err
	}

	if m.ClientID != clientID {
		return nil, utils.PermissionError("access denied")
	}
	if m.Status != models.MissionCompleted {
		return nil, utils.ConflictError("mission must be completed before payment")
	}

	if _, err := s.Payments.GetByMissionID(missionID); err == nil {
		return nil, utils.ConflictError("payment already exists for this mission")
	} else if !errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, err
	}

	client, err := s.Users.GetByID(clientID)
	if err != nil {
		return nil, utils.NotFoundError("user not found")
	}

	customerRef := client.StripeCustomerID
	if customerRef == "" {
		name := fmt.Sprintf("%s %s", client.FirstName, client.LastName)
		customerRef, err = s.Processor.CreateCustomer(ctx, client.Email, name, client.ID)
		if err != nil {
			return nil, err
		}
		client.StripeCustomerID = customerRef
		if err := s.Users.Update(client); err != nil {
			return nil, err
		}
	}

	// Minor currency units.
	amount := int64(math.Round(m.ClientPrice * 100))
	metadata := map[string]string{
		"missionId":  m.ID,
		"clientId":   m.ClientID,
		"providerId": m.ProviderID(),
	}
	description := fmt.Sprintf("Payment for mission: %s", m.Title)

	ref, clientSecret, err := s.Processor.CreateIntent(ctx, amount, "eur", customerRef, description, metadata)
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		ID:                 uuid.New().String(),
		MissionID:          missionID,
		UserID:             clientID,
		Amount:             m.ClientPrice,
		PlatformFee:        m.PlatformFee,
		ProviderEarning:    m.ProviderEarning,
		StripePaymentID:    ref,
		StripeClientSecret: clientSecret,
		Status:             models.PaymentPending,
	}
	if err := s.Payments.Create(p); err != nil {
		return nil, err
	}

	return &IntentResult{Payment: p, ClientSecret: clientSecret}, nil
}

// Confirm verifies the intent with the processor, marks the payment
// COMPLETED and credits the provider's balance with the earning.
func (s *DefaultPaymentService) Confirm(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, err := s.Payments.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil, utils.NotFoundError("payment not found")
		}
		return nil, err
	}

	if p.Status == models.PaymentCompleted {
		return nil, utils.ConflictError("payment already completed")
	}

	succeeded, err := s.Processor.IntentSucceeded(ctx, p.StripePaymentID)
	if err != nil {
		return nil, err
	}
	if !succeeded {
		return nil, utils.ValidationError("payment not succeeded")
	}

	if err := s.Payments.SetStatus(paymentID, models.PaymentCompleted); err != nil {
		return nil, err
	}
	p.Status = models.PaymentCompleted

	m, err := s.Missions.GetByID(p.MissionID)
	if err != nil {
		return nil, err
	}
	if providerID := m.ProviderID(); providerID != "" {
		if err := s.Users.IncrementBalance(providerID, p.ProviderEarning); err != nil {
			return nil, err
		}

		s.Dispatcher.Dispatch(ctx, notification.Event{
			Kind:        notification.PaymentReceived,
			RecipientID: providerID,
			Title:       "Paiement reçu",
			Body:        fmt.Sprintf("Vous avez reçu %.2f€", p.ProviderEarning),
			Data: map[string]string{
				"missionId": p.MissionID,
				"type":      string(notification.PaymentReceived),
			},
		})
	}

	return p, nil
}

// RequestPayout withdraws amount from the provider's balance. The actual
// bank transfer is delegated to the processor.
func (s *DefaultPaymentService) RequestPayout(providerID string, amount float64) error {
	provider, err := s.Users.GetByID(providerID)
	if err != nil {
		return utils.NotFoundError("user not found")
	}
	if provider.Role != models.RoleProvider {
		return utils.PermissionError("only providers can request payouts")
	}

	if amount < minPayoutAmount() {
		return utils.ValidationError("minimum payout amount is %.0f€", minPayoutAmount())
	}
	if amount > provider.Balance {
		return utils.ValidationError("insufficient balance")
	}

	return s.Users.IncrementBalance(providerID, -amount)
}

// GetByMissionID returns a mission's payment to one of its parties.
func (s *DefaultPaymentService) GetByMissionID(missionID, userID string) (*models.Payment, error) {
	p, err := s.Payments.GetByMissionID(missionID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil, utils.NotFoundError("payment not found")
		}
		return nil, err
	}

	m, err := s.Missions.GetByID(p.MissionID)
	if err != nil {
		return nil, err
	}
	if !m.IsParty(userID) {
		return nil, utils.PermissionError("access denied")
	}
	return p, nil
}

// History returns the payer's payments, newest first.
func (s *DefaultPaymentService) History(userID string) ([]models.Payment, error) {
	return s.Payments.ListForUser(userID)
}
