package ratingRepo

import (
	"errors"

	"errandly/models"
)

// ErrNotFound is returned when no rating matches the lookup.
var ErrNotFound = errors.New("rating not found")

// RatingRepository defines methods for rating data access.
type RatingRepository interface {
	// Create inserts a new rating record.
	Create(rating *models.Rating) error
	// GetByMissionID retrieves the (at most one) rating for a mission.
	GetByMissionID(missionID string) (*models.Rating, error)
	// ListForRated returns all ratings received by a user, newest first.
	ListForRated(ratedID string) ([]models.Rating, error)
}
