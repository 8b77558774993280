package payment

import (
	"context"
	"errors"

	paymentRepo "errandly/database/repository/payment"
	"errandly/models"
	"errandly/utils"

	"go.uber.org/zap"
)

// HandleWebhookEvent routes processor webhook events by type. Unknown
// event types are logged and ignored; they are not errors.
func (s *DefaultPaymentService) HandleWebhookEvent(ctx context.Context, eventType, stripePaymentID string) error {
	switch eventType {
	case "payment_intent.succeeded":
		return s.handleIntentSucceeded(ctx, stripePaymentID)
	case "payment_intent.payment_failed":
		return s.handleIntentFailed(stripePaymentID)
	default:
		utils.GetLogger().Info("webhook: unhandled event type",
			zap.String("type", eventType))
		return nil
	}
}

// handleIntentSucceeded confirms the matching payment if it is still pending.
func (s *DefaultPaymentService) handleIntentSucceeded(ctx context.Context, stripePaymentID string) error {
	p, err := s.Payments.GetByStripeID(stripePaymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			utils.GetLogger().Warn("webhook: no payment for intent",
				zap.String("stripePaymentId", stripePaymentID))
			return nil
		}
		return err
	}
	if p.Status != models.PaymentPending {
		return nil
	}
	_, err = s.Confirm(ctx, p.ID)
	return err
}

// handleIntentFailed marks the matching payment FAILED.
func (s *DefaultPaymentService) handleIntentFailed(stripePaymentID string) error {
	p, err := s.Payments.GetByStripeID(stripePaymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.Payments.SetStatus(p.ID, models.PaymentFailed)
}
