package mission

import (
	"context"
	"time"

	messageRepo "errandly/database/repository/message"
	missionRepo "errandly/database/repository/mission"
	paymentRepo "errandly/database/repository/payment"
	ratingRepo "errandly/database/repository/rating"
	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/services/matching"
	"errandly/services/notification"
)

// CreateMissionInput carries the client-supplied fields of a new mission.
type CreateMissionInput struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Category          string                `json:"category"`
	PickupAddress     string                `json:"pickupAddress"`
	PickupLatitude    *float64              `json:"pickupLatitude,omitempty"`
	PickupLongitude   *float64              `json:"pickupLongitude,omitempty"`
	DeliveryAddress   string                `json:"deliveryAddress,omitempty"`
	DeliveryLatitude  *float64              `json:"deliveryLatitude,omitempty"`
	DeliveryLongitude *float64              `json:"deliveryLongitude,omitempty"`
	Urgency           models.MissionUrgency `json:"urgency"`
	ClientPrice       float64               `json:"clientPrice"`
	EstimatedDuration *int                  `json:"estimatedDuration,omitempty"`
	Notes             string                `json:"notes,omitempty"`
}

// MissionService defines the mission lifecycle operations.
type MissionService interface {
	// Create validates and persists a new PENDING mission and fans out
	// alerts to nearby available providers.
	Create(ctx context.Context, clientID string, input CreateMissionInput) (*models.Mission, error)
	// Accept atomically assigns a PENDING mission to the provider.
	Accept(ctx context.Context, missionID, providerID string) (*models.Mission, error)
	// Start transitions an ACCEPTED mission to IN_PROGRESS.
	Start(ctx context.Context, missionID, providerID string) (*models.Mission, error)
	// Complete transitions an IN_PROGRESS mission to COMPLETED.
	Complete(ctx context.Context, missionID, providerID string) (*models.Mission, error)
	// Cancel moves any non-terminal mission to CANCELLED.
	Cancel(ctx context.Context, missionID, userID string) (*models.Mission, error)
	// GetByID returns the full mission detail to one of its parties or an admin.
	GetByID(missionID, userID string) (*models.MissionDetail, error)
	// ListUserMissions returns the caller's missions, newest first,
	// optionally filtered by status.
	ListUserMissions(userID string, role models.UserRole, status models.MissionStatus) ([]models.Mission, error)
}

// ReminderScheduler enqueues delayed follow-ups for missions.
type ReminderScheduler interface {
	SchedulePaymentReminder(missionID, clientID string, at time.Time) error
}

// DefaultMissionService is the production implementation.
type DefaultMissionService struct {
	Repo        missionRepo.MissionRepository
	UserRepo    userRepo.UserRepository
	MessageRepo messageRepo.MessageRepository
	RatingRepo  ratingRepo.RatingRepository
	PaymentRepo paymentRepo.PaymentRepository
	Matcher     matching.MatchingService
	Dispatcher  notification.Dispatcher
	// Reminders is optional; nil disables delayed follow-ups.
	Reminders ReminderScheduler
}
