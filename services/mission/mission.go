package mission

import (
	"context"
	"errors"
	"strings"

	missionRepo "errandly/database/repository/mission"
	paymentRepo "errandly/database/repository/payment"
	ratingRepo "errandly/database/repository/rating"
	"errandly/models"
	"errandly/services/notification"
	"errandly/services/payment"
	"errandly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates the request, persists the mission in PENDING state and
// fans out alerts to nearby available providers. Fan-out is best-effort:
// a matching or dispatch failure never fails the creation.
func (s *DefaultMissionService) Create(ctx context.Context, clientID string, input CreateMissionInput) (*models.Mission, error) {
	caller, err := s.UserRepo.GetByID(clientID)
	if err != nil {
		return nil, utils.NotFoundError("user not found")
	}
	if err := authorize(opCreate, caller, nil); err != nil {
		return nil, err
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	platformFee, providerEarning := payment.CalculateFees(input.ClientPrice)

	m := &models.Mission{
		ID:                uuid.New().String(),
		ClientID:          clientID,
		Title:             input.Title,
		Description:       input.Description,
		Category:          input.Category,
		PickupAddress:     input.PickupAddress,
		PickupLatitude:    input.PickupLatitude,
		PickupLongitude:   input.PickupLongitude,
		DeliveryAddress:   input.DeliveryAddress,
		DeliveryLatitude:  input.DeliveryLatitude,
		DeliveryLongitude: input.DeliveryLongitude,
		Urgency:           input.Urgency,
		ClientPrice:       input.ClientPrice,
		PlatformFee:       platformFee,
		ProviderEarning:   providerEarning,
		EstimatedDuration: input.EstimatedDuration,
		Notes:             input.Notes,
		Status:            models.MissionPending,
	}
	if m.Urgency == "" {
		m.Urgency = models.UrgencyMedium
	}

	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}

	s.fanOut(ctx, m)
	return m, nil
}

// fanOut alerts every eligible nearby provider about the new mission.
func (s *DefaultMissionService) fanOut(ctx context.Context, m *models.Mission) {
	providers, err := s.Matcher.NearbyProvidersForMission(m)
	if err != nil {
		utils.GetLogger().Warn("mission fan-out: provider matching failed",
			zap.String("missionId", m.ID), zap.Error(err))
		return
	}

	events := make([]notification.Event, 0, len(providers))
	for _, provider := range providers {
		events = append(events, newMissionEvent(provider.ID, m))
	}
	s.Dispatcher.DispatchAll(ctx, events)
}

func validateCreateInput(input CreateMissionInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Category) == "" ||
		strings.TrimSpace(input.PickupAddress) == "" {
		return utils.ValidationError("title, description, category and pickup address are required")
	}
	if input.ClientPrice < 1 {
		return utils.ValidationError("price must be at least 1")
	}
	switch input.Urgency {
	case "", models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh, models.UrgencyUrgent:
	default:
		return utils.ValidationError("invalid urgency level")
	}
	return nil
}

// GetByID returns the full mission detail to one of its parties or an admin.
func (s *DefaultMissionService) GetByID(missionID, userID string) (*models.MissionDetail, error) {
	m, err := s.Repo.GetByID(missionID)
	if err != nil {
		if errors.Is(err, missionRepo.ErrNotFound) {
			return nil, utils.NotFoundError("mission not found")
		}
		return nil, err
	}

	caller, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, utils.NotFoundError("user not found")
	}
	if err := authorize(opGet, caller, m); err != nil {
		return nil, err
	}

	detail := &models.MissionDetail{Mission: *m}

	if client, err := s.UserRepo.GetByID(m.ClientID); err == nil {
		detail.Client = client.Summary()
	}
	if providerID := m.ProviderID(); providerID != "" {
		if provider, err := s.UserRepo.GetByID(providerID); err == nil {
			detail.Provider = provider.Summary()
		}
	}
	if messages, err := s.MessageRepo.ListForMission(missionID); err == nil {
		detail.Messages = messages
	}
	if rating, err := s.RatingRepo.GetByMissionID(missionID); err == nil {
		detail.Rating = rating
	} else if !errors.Is(err, ratingRepo.ErrNotFound) {
		return nil, err
	}
	if pay, err := s.PaymentRepo.GetByMissionID(missionID); err == nil {
		detail.Payment = pay
	} else if !errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, err
	}

	return detail, nil
}

// ListUserMissions returns the caller's missions, newest first.
func (s *DefaultMissionService) ListUserMissions(userID string, role models.UserRole, status models.MissionStatus) ([]models.Mission, error) {
	if role == models.RoleProvider {
		return s.Repo.ListForProvider(userID, status)
	}
	return s.Repo.ListForClient(userID, status)
}
