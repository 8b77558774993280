package memory

import (
	"sort"
	"time"

	missionRepo "errandly/database/repository/mission"
	"errandly/models"
)

// MissionRepo is the in-memory MissionRepository.
type MissionRepo struct {
	s *Store
}

var _ missionRepo.MissionRepository = (*MissionRepo)(nil)

func (r *MissionRepo) Create(mission *models.Mission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	mission.CreatedAt = now
	mission.UpdatedAt = now
	r.s.missions[mission.ID] = cloneMission(mission)
	r.s.missionOrder = append(r.s.missionOrder, mission.ID)
	return nil
}

func (r *MissionRepo) GetByID(id string) (*models.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.missions[id]
	if !ok {
		return nil, missionRepo.ErrNotFound
	}
	return cloneMission(m), nil
}

// ListByStatus returns matching missions in insertion order, which keeps
// the oldest-first contract even when timestamps collide.
func (r *MissionRepo) ListByStatus(status models.MissionStatus) ([]models.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var missions []models.Mission
	for _, id := range r.s.missionOrder {
		m := r.s.missions[id]
		if m.Status == status {
			missions = append(missions, *cloneMission(m))
		}
	}
	return missions, nil
}

func (r *MissionRepo) ListForClient(clientID string, status models.MissionStatus) ([]models.Mission, error) {
	return r.listWhere(func(m *models.Mission) bool {
		return m.ClientID == clientID && (status == "" || m.Status == status)
	})
}

func (r *MissionRepo) ListForProvider(providerID string, status models.MissionStatus) ([]models.Mission, error) {
	return r.listWhere(func(m *models.Mission) bool {
		return m.ProviderID() == providerID && (status == "" || m.Status == status)
	})
}

func (r *MissionRepo) listWhere(match func(*models.Mission) bool) ([]models.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var missions []models.Mission
	for _, id := range r.s.missionOrder {
		m := r.s.missions[id]
		if match(m) {
			missions = append(missions, *cloneMission(m))
		}
	}
	// Newest first, matching the Mongo repos.
	sort.SliceStable(missions, func(i, j int) bool {
		return missions[i].CreatedAt.After(missions[j].CreatedAt)
	})
	return missions, nil
}

func (r *MissionRepo) AcceptPending(missionID, providerID string, at time.Time) (*models.Mission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.missions[missionID]
	if !ok {
		return nil, missionRepo.ErrNotFound
	}
	if m.Status != models.MissionPending {
		return nil, missionRepo.ErrNotPending
	}
	m.Status = models.MissionAccepted
	m.Assignment = &models.Assignment{ProviderID: providerID, AcceptedAt: at}
	m.UpdatedAt = at
	return cloneMission(m), nil
}

func (r *MissionRepo) MarkStarted(missionID string, at time.Time) error {
	return r.update(missionID, func(m *models.Mission) {
		m.Status = models.MissionInProgress
		t := at
		m.StartedAt = &t
		m.UpdatedAt = at
	})
}

func (r *MissionRepo) MarkCompleted(missionID string, at time.Time) error {
	return r.update(missionID, func(m *models.Mission) {
		m.Status = models.MissionCompleted
		t := at
		m.CompletedAt = &t
		m.UpdatedAt = at
	})
}

func (r *MissionRepo) MarkCancelled(missionID string) error {
	return r.update(missionID, func(m *models.Mission) {
		m.Status = models.MissionCancelled
		m.UpdatedAt = time.Now()
	})
}

func (r *MissionRepo) update(missionID string, mutate func(*models.Mission)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.missions[missionID]
	if !ok {
		return missionRepo.ErrNotFound
	}
	mutate(m)
	return nil
}
