package mission

import (
	"context"
	"errors"
	"time"

	"errandly/config"
	missionRepo "errandly/database/repository/mission"
	"errandly/models"
	"errandly/services/notification"
	"errandly/utils"

	"go.uber.org/zap"
)

// Accept atomically assigns a PENDING mission to the provider. The
// status gate lives in the store's conditional update, so two providers
// racing on the same mission cannot both win.
func (s *DefaultMissionService) Accept(ctx context.Context, missionID, providerID string) (*models.Mission, error) {
	caller, err := s.UserRepo.GetByID(providerID)
	if err != nil {
		return nil, utils.NotFoundError("user not found")
	}
	if err := authorize(opAccept, caller, nil); err != nil {
		return nil, err
	}

	m, err := s.Repo.AcceptPending(missionID, providerID, time.Now())
	if err != nil {
		if errors.Is(err, missionRepo.ErrNotFound) {
			return nil, utils.NotFoundError("mission not found")
		}
		if errors.Is(err, missionRepo.ErrNotPending) {
			return nil, utils.ConflictError("mission is not available")
		}
		return nil, err
	}

	s.Dispatcher.Dispatch(ctx, acceptedEvent(m, caller))
	return m, nil
}

// Start transitions an ACCEPTED mission to IN_PROGRESS.
func (s *DefaultMissionService) Start(ctx context.Context, missionID, providerID string) (*models.Mission, error) {
	m, err := s.loadForTransition(missionID, providerID, opStart)
	if err != nil {
		return nil, err
	}

	if m.Status != models.MissionAccepted {
		return nil, utils.ConflictError("mission must be accepted first")
	}

	now := time.Now()
	if err := s.Repo.MarkStarted(missionID, now); err != nil {
		return nil, err
	}
	m.Status = models.MissionInProgress
	m.StartedAt = &now

	s.Dispatcher.Dispatch(ctx, startedEvent(m))
	return m, nil
}

// Complete transitions an IN_PROGRESS mission to COMPLETED. Payment is
// not triggered here; the client requests settlement separately.
func (s *DefaultMissionService) Complete(ctx context.Context, missionID, providerID string) (*models.Mission, error) {
	m, err := s.loadForTransition(missionID, providerID, opComplete)
	if err != nil {
		return nil, err
	}

	if m.Status != models.MissionInProgress {
		return nil, utils.ConflictError("mission must be in progress")
	}

	now := time.Now()
	if err := s.Repo.MarkCompleted(missionID, now); err != nil {
		return nil, err
	}
	m.Status = models.MissionCompleted
	m.CompletedAt = &now

	s.Dispatcher.Dispatch(ctx, completedEvent(m))

	// Nudge the client to settle if no payment shows up in time.
	if s.Reminders != nil {
		at := now.Add(paymentReminderDelay())
		if err := s.Reminders.SchedulePaymentReminder(m.ID, m.ClientID, at); err != nil {
			utils.GetLogger().Warn("payment reminder scheduling failed",
				zap.String("missionId", m.ID), zap.Error(err))
		}
	}
	return m, nil
}

func paymentReminderDelay() time.Duration {
	if h := config.AppConfig.PaymentReminderHours; h > 0 {
		return time.Duration(h) * time.Hour
	}
	return 24 * time.Hour
}

// Cancel moves a non-terminal mission to CANCELLED and notifies the
// other party, if there is one.
func (s *DefaultMissionService) Cancel(ctx context.Context, missionID, userID string) (*models.Mission, error) {
	m, err := s.loadForTransition(missionID, userID, opCancel)
	if err != nil {
		return nil, err
	}

	if m.Status == models.MissionCompleted {
		return nil, utils.ConflictError("cannot cancel completed missions")
	}

	if err := s.Repo.MarkCancelled(missionID); err != nil {
		return nil, err
	}
	m.Status = models.MissionCancelled

	var events []notification.Event
	if userID == m.ClientID {
		if providerID := m.ProviderID(); providerID != "" {
			events = append(events, cancelledEvent(m, providerID))
		}
	} else {
		events = append(events, cancelledEvent(m, m.ClientID))
	}
	s.Dispatcher.DispatchAll(ctx, events)

	return m, nil
}

// loadForTransition fetches the mission and caller and runs the
// authorization rule for op.
func (s *DefaultMissionService) loadForTransition(missionID, userID string, op operation) (*models.Mission, error) {
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
	if err := authorize(op, caller, m); err != nil {
		return nil, err
	}
	return m, nil
}
