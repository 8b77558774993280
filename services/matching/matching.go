package matching

import (
	"sort"

	"errandly/config"
	missionRepo "errandly/database/repository/mission"
	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/utils"
)

// fallbackRadiusKm applies when neither the caller nor the configuration
// supplies a discovery radius.
const fallbackRadiusKm = 10

// MatchingService finds missions near providers and providers near missions.
type MatchingService interface {
	// NearbyMissions returns PENDING missions whose pickup point lies
	// within radiusKm of the given position, nearest first. A radius of
	// zero or less selects the configured default.
	NearbyMissions(providerID string, lat, lon, radiusKm float64) ([]models.NearbyMission, error)
	// NearbyProvidersForMission returns the available providers whose own
	// service radius covers the mission's pickup point. Used only to
	// drive new-mission fan-out.
	NearbyProvidersForMission(mission *models.Mission) ([]models.User, error)
}

// DefaultMatchingService implements MatchingService.
type DefaultMatchingService struct {
	MissionRepo missionRepo.MissionRepository
	UserRepo    userRepo.UserRepository
}

// DefaultRadiusKm returns the configured discovery radius.
func DefaultRadiusKm() float64 {
	if config.AppConfig.DefaultRadiusKm > 0 {
		return config.AppConfig.DefaultRadiusKm
	}
	return fallbackRadiusKm
}

// NearbyMissions returns open missions within radiusKm of the provider's
// position, sorted ascending by distance. Ties keep creation order.
func (s *DefaultMatchingService) NearbyMissions(providerID string, lat, lon, radiusKm float64) ([]models.NearbyMission, error) {
	caller, err := s.UserRepo.GetByID(providerID)
	if err != nil {
		return nil, utils.NotFoundError("user not found")
	}
	if caller.Role != models.RoleProvider {
		return nil, utils.PermissionError("only providers can view nearby missions")
	}

	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm()
	}

	// ListByStatus returns oldest first, so the stable sort below keeps
	// creation order between equidistant missions.
	pending, err := s.MissionRepo.ListByStatus(models.MissionPending)
	if err != nil {
		return nil, err
	}

	var nearby []models.NearbyMission
	for _, mission := range pending {
		if !mission.HasPickupCoords() {
			continue
		}
		distance := utils.Haversine(lat, lon, *mission.PickupLatitude, *mission.PickupLongitude)
		if distance > radiusKm {
			continue
		}
		item := models.NearbyMission{Mission: mission, DistanceKm: distance}
		if client, err := s.UserRepo.GetByID(mission.ClientID); err == nil {
			item.Client = client.Summary()
		}
		nearby = append(nearby, item)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}

// NearbyProvidersForMission selects fan-out targets for a new mission.
// The radius check is asymmetric on purpose: each provider's configured
// service radius governs, not a mission-side radius.
func (s *DefaultMatchingService) NearbyProvidersForMission(mission *models.Mission) ([]models.User, error) {
	if !mission.HasPickupCoords() {
		return nil, nil
	}

	providers, err := s.UserRepo.ListAvailableProviders()
	if err != nil {
		return nil, err
	}

	var nearby []models.User
	for _, provider := range providers {
		if !provider.HasLocation() {
			continue
		}
		radius := provider.ServiceRadius
		if radius <= 0 {
			radius = DefaultRadiusKm()
		}
		distance := utils.Haversine(
			*mission.PickupLatitude, *mission.PickupLongitude,
			*provider.CurrentLatitude, *provider.CurrentLongitude,
		)
		if distance <= radius {
			nearby = append(nearby, provider)
		}
	}
	return nearby, nil
}
