package rating

import (
	"errors"
	"math"

	missionRepo "errandly/database/repository/mission"
	ratingRepo "errandly/database/repository/rating"
	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/utils"

	"github.com/google/uuid"
)

// RatingService handles post-completion reviews.
type RatingService interface {
	// Create records the one rating a mission party can leave for the
	// other, then recomputes the rated user's average.
	Create(raterID, missionID string, score int, comment string) (*models.Rating, error)
	// ListForUser returns ratings received by a user, newest first.
	ListForUser(userID string) ([]models.Rating, error)
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Ratings  ratingRepo.RatingRepository
	Missions missionRepo.MissionRepository
	Users    userRepo.UserRepository
}

// Create records a rating for a completed mission. Exactly one rating
// can exist per mission; the rated party is always the other one.
func (s *DefaultRatingService) Create(raterID, missionID string, score int, comment string) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, utils.ValidationError("score must be between 1 and 5")
	}

	m, err := s.Missions.GetByID(missionID)
	if err != nil {
		if errors.Is(err, missionRepo.ErrNotFound) {
			return nil, utils.NotFoundError("mission not found")
		}
		return nil, err
	}

	if m.Status != models.MissionCompleted {
		return nil, utils.ConflictError("can only rate completed missions")
	}
	if !m.IsParty(raterID) {
		return nil, utils.PermissionError("access denied")
	}

	if _, err := s.Ratings.GetByMissionID(missionID); err == nil {
		return nil, utils.ConflictError("mission already rated")
	} else if !errors.Is(err, ratingRepo.ErrNotFound) {
		return nil, err
	}

	var ratedID string
	if raterID == m.ClientID {
		ratedID = m.ProviderID()
	} else {
		ratedID = m.ClientID
	}
	if ratedID == "" {
		return nil, utils.ConflictError("cannot rate this mission")
	}

	r := &models.Rating{
		ID:        uuid.New().String(),
		MissionID: missionID,
		RaterID:   raterID,
		RatedID:   ratedID,
		Score:     score,
		Comment:   comment,
	}
	if err := s.Ratings.Create(r); err != nil {
		return nil, err
	}

	if err := s.recomputeUserRating(ratedID); err != nil {
		return nil, err
	}
	return r, nil
}

// recomputeUserRating refreshes the rated user's denormalized average,
// rounded to one decimal.
func (s *DefaultRatingService) recomputeUserRating(userID string) error {
	ratings, err := s.Ratings.ListForRated(userID)
	if err != nil {
		return err
	}

	total := len(ratings)
	average := 0.0
	if total > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Score
		}
		average = math.Round(float64(sum)/float64(total)*10) / 10
	}
	return s.Users.SetRatingStats(userID, average, total)
}

// ListForUser returns ratings received by a user, newest first.
func (s *DefaultRatingService) ListForUser(userID string) ([]models.Rating, error) {
	ratings, err := s.Ratings.ListForRated(userID)
	if err != nil {
		return nil, err
	}
	for i := range ratings {
		if rater, err := s.Users.GetByID(ratings[i].RaterID); err == nil {
			ratings[i].Rater = rater.Summary()
		}
	}
	return ratings, nil
}
