package missionRepo

import (
	"errors"
	"time"

	"errandly/models"
)

// ErrNotFound is returned when no mission matches the lookup.
var ErrNotFound = errors.New("mission not found")

// ErrNotPending is returned by AcceptPending when the mission exists but
// is no longer in PENDING state, i.e. the caller lost the acceptance race.
var ErrNotPending = errors.New("mission is not pending")

// MissionRepository defines methods for mission data access.
type MissionRepository interface {
	// Create inserts a new mission record.
	Create(mission *models.Mission) error
	// GetByID retrieves a mission by its unique ID.
	GetByID(id string) (*models.Mission, error)
	// ListByStatus returns missions in the given state, oldest first.
	ListByStatus(status models.MissionStatus) ([]models.Mission, error)
	// ListForClient returns a client's missions, newest first. An empty
	// status matches all states.
	ListForClient(clientID string, status models.MissionStatus) ([]models.Mission, error)
	// ListForProvider returns a provider's assigned missions, newest
	// first. An empty status matches all states.
	ListForProvider(providerID string, status models.MissionStatus) ([]models.Mission, error)
	// AcceptPending assigns the mission to the provider if and only if it
	// is still PENDING. The check and the write are a single atomic
	// conditional update so exactly one of several racing providers wins;
	// losers get ErrNotPending.
	AcceptPending(missionID, providerID string, at time.Time) (*models.Mission, error)
	// MarkStarted transitions ACCEPTED -> IN_PROGRESS.
	MarkStarted(missionID string, at time.Time) error
	// MarkCompleted transitions IN_PROGRESS -> COMPLETED.
	MarkCompleted(missionID string, at time.Time) error
	// MarkCancelled transitions any non-terminal state -> CANCELLED.
	MarkCancelled(missionID string) error
}
