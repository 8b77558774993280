package memory

import (
	"time"

	userRepo "errandly/database/repository/user"
	"errandly/models"
)

// UserRepo is the in-memory UserRepository.
type UserRepo struct {
	s *Store
}

var _ userRepo.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) GetByID(id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByEmail(email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *UserRepo) Create(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) Update(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return userRepo.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) IncrementBalance(id string, delta float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.Balance += delta
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepo) SetRatingStats(id string, average float64, total int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.AverageRating = average
	u.TotalRatings = total
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepo) ListAvailableProviders() ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var providers []models.User
	for _, u := range r.s.users {
		if u.Role == models.RoleProvider &&
			u.Status == models.UserActive &&
			u.IsAvailable &&
			u.FCMToken != "" &&
			u.HasLocation() {
			providers = append(providers, *cloneUser(u))
		}
	}
	return providers, nil
}
