package payment

import (
	"errors"

	"errandly/config"
	paymentRepo "errandly/database/repository/payment"
	"errandly/models"
	"errandly/utils"
)

func minPayoutAmount() float64 {
	if config.AppConfig.MinPayoutAmount > 0 {
		return config.AppConfig.MinPayoutAmount
	}
	return 10
}

// Earnings aggregates a provider's earnings over completed missions:
// total = sum of earnings, paid = those with a COMPLETED payment,
// pending = the difference.
func (s *DefaultPaymentService) Earnings(providerID string) (*models.Earnings, error) {
	provider, err := s.Users.GetByID(providerID)
	if err != nil {
		return nil, utils.NotFoundError("user not found")
	}
	if provider.Role != models.RoleProvider {
		return nil, utils.PermissionError("only providers can view earnings")
	}

	completed, err := s.Missions.ListForProvider(providerID, models.MissionCompleted)
	if err != nil {
		return nil, err
	}

	report := &models.Earnings{
		CurrentBalance:    provider.Balance,
		CompletedMissions: len(completed),
	}
	for _, m := range completed {
		report.TotalEarnings += m.ProviderEarning

		p, err := s.Payments.GetByMissionID(m.ID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if p.Status == models.PaymentCompleted {
			report.PaidEarnings += m.ProviderEarning
		}
	}
	report.PendingEarnings = report.TotalEarnings - report.PaidEarnings
	return report, nil
}
