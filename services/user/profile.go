package user

import (
	"errors"
	"time"

	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/utils"
)

// GetByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetByID(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NotFoundError("user not found")
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies a partial profile update.
func (s *DefaultUserService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	u, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.ProfilePicture != nil {
		u.ProfilePicture = *update.ProfilePicture
	}
	if update.Address != nil {
		u.Address = *update.Address
	}
	if update.City != nil {
		u.City = *update.City
	}
	if update.Country != nil {
		u.Country = *update.Country
	}
	if update.VehicleType != nil {
		u.VehicleType = *update.VehicleType
	}
	if update.ServiceRadius != nil {
		u.ServiceRadius = *update.ServiceRadius
	}

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateLocation stores the user's current position.
func (s *DefaultUserService) UpdateLocation(userID string, latitude, longitude float64) error {
	u, err := s.GetByID(userID)
	if err != nil {
		return err
	}

	u.CurrentLatitude = &latitude
	u.CurrentLongitude = &longitude
	u.LastActiveAt = time.Now()
	return s.Repo.Update(u)
}

// UpdateAvailability toggles a provider's availability flag.
func (s *DefaultUserService) UpdateAvailability(userID string, isAvailable bool) error {
	u, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if u.Role != models.RoleProvider {
		return utils.PermissionError("only providers can update availability")
	}

	u.IsAvailable = isAvailable
	return s.Repo.Update(u)
}

// UpdateFCMToken registers the device token for push notifications.
func (s *DefaultUserService) UpdateFCMToken(userID, fcmToken string) error {
	u, err := s.GetByID(userID)
	if err != nil {
		return err
	}

	u.FCMToken = fcmToken
	return s.Repo.Update(u)
}
