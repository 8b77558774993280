package models

import "time"

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	MissionPending    MissionStatus = "PENDING"
	MissionAccepted   MissionStatus = "ACCEPTED"
	MissionInProgress MissionStatus = "IN_PROGRESS"
	MissionCompleted  MissionStatus = "COMPLETED"
	MissionCancelled  MissionStatus = "CANCELLED"
)

// MissionUrgency is how soon the client needs the errand done.
type MissionUrgency string

const (
	UrgencyLow    MissionUrgency = "LOW"
	UrgencyMedium MissionUrgency = "MEDIUM"
	UrgencyHigh   MissionUrgency = "HIGH"
	UrgencyUrgent MissionUrgency = "URGENT"
)

// Assignment records which provider took the mission and when. It is nil
// while the mission is still PENDING, so an unassigned mission cannot
// carry a provider by construction.
type Assignment struct {
	ProviderID string    `bson:"providerId" json:"providerId"`
	AcceptedAt time.Time `bson:"acceptedAt" json:"acceptedAt"`
}

// Mission is a client-posted errand request.
type Mission struct {
	ID         string      `bson:"id" json:"id"`
	ClientID   string      `bson:"clientId" json:"clientId"`
	Assignment *Assignment `bson:"assignment,omitempty" json:"assignment,omitempty"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Category    string `bson:"category" json:"category"`

	PickupAddress   string   `bson:"pickupAddress" json:"pickupAddress"`
	PickupLatitude  *float64 `bson:"pickupLatitude,omitempty" json:"pickupLatitude,omitempty"`
	PickupLongitude *float64 `bson:"pickupLongitude,omitempty" json:"pickupLongitude,omitempty"`

	DeliveryAddress   string   `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	DeliveryLatitude  *float64 `bson:"deliveryLatitude,omitempty" json:"deliveryLatitude,omitempty"`
	DeliveryLongitude *float64 `bson:"deliveryLongitude,omitempty" json:"deliveryLongitude,omitempty"`

	Urgency MissionUrgency `bson:"urgency" json:"urgency"`

	// Fee split is computed once at creation and never changes:
	// PlatformFee + ProviderEarning == ClientPrice.
	ClientPrice     float64 `bson:"clientPrice" json:"clientPrice"`
	PlatformFee     float64 `bson:"platformFee" json:"platformFee"`
	ProviderEarning float64 `bson:"providerEarning" json:"providerEarning"`

	EstimatedDuration *int   `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty"`
	Notes             string `bson:"notes,omitempty" json:"notes,omitempty"`

	Status      MissionStatus `bson:"status" json:"status"`
	StartedAt   *time.Time    `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProviderID returns the assigned provider's ID, or "" if unassigned.
func (m *Mission) ProviderID() string {
	if m.Assignment == nil {
		return ""
	}
	return m.Assignment.ProviderID
}

// IsParty reports whether userID is the client or the assigned provider.
func (m *Mission) IsParty(userID string) bool {
	return m.ClientID == userID || m.ProviderID() == userID
}

// IsTerminal reports whether no further transitions are allowed.
func (m *Mission) IsTerminal() bool {
	return m.Status == MissionCompleted || m.Status == MissionCancelled
}

// HasPickupCoords reports whether the pickup point is geocoded.
func (m *Mission) HasPickupCoords() bool {
	return m.PickupLatitude != nil && m.PickupLongitude != nil
}

// NearbyMission is a pending mission with its distance from the querying
// provider attached.
type NearbyMission struct {
	Mission
	Client     *UserSummary `json:"client,omitempty"`
	DistanceKm float64      `json:"distanceKm"`
}

// MissionDetail is the full view of a mission returned to its parties.
type MissionDetail struct {
	Mission
	Client   *UserSummary `json:"client,omitempty"`
	Provider *UserSummary `json:"provider,omitempty"`
	Messages []Message    `json:"messages"`
	Rating   *Rating      `json:"rating,omitempty"`
	Payment  *Payment     `json:"payment,omitempty"`
}
