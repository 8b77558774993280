package mission

import (
	"fmt"

	"errandly/models"
	"errandly/services/notification"
)

// Event builders: lifecycle transitions emit these, the dispatcher
// delivers them. Notification copy is user-facing product text.

func newMissionEvent(providerID string, m *models.Mission) notification.Event {
	return notification.Event{
		Kind:        notification.NewMission,
		RecipientID: providerID,
		Title:       "Nouvelle mission disponible",
		Body:        fmt.Sprintf("%s - %.2f€", m.Title, m.ClientPrice),
		Data:        eventData(m.ID, notification.NewMission),
	}
}

func acceptedEvent(m *models.Mission, provider *models.User) notification.Event {
	return notification.Event{
		Kind:        notification.MissionAccepted,
		RecipientID: m.ClientID,
		Title:       "Mission acceptée",
		Body:        fmt.Sprintf("%s a accepté votre mission", provider.FirstName),
		Data:        eventData(m.ID, notification.MissionAccepted),
	}
}

func startedEvent(m *models.Mission) notification.Event {
	return notification.Event{
		Kind:        notification.MissionStarted,
		RecipientID: m.ClientID,
		Title:       "Mission démarrée",
		Body:        "Votre mission a commencé",
		Data:        eventData(m.ID, notification.MissionStarted),
	}
}

func completedEvent(m *models.Mission) notification.Event {
	return notification.Event{
		Kind:        notification.MissionCompleted,
		RecipientID: m.ClientID,
		Title:       "Mission terminée",
		Body:        "Votre mission est terminée",
		Data:        eventData(m.ID, notification.MissionCompleted),
	}
}

func cancelledEvent(m *models.Mission, recipientID string) notification.Event {
	return notification.Event{
		Kind:        notification.MissionCancelled,
		RecipientID: recipientID,
		Title:       "Mission annulée",
		Body:        "La mission a été annulée",
		Data:        eventData(m.ID, notification.MissionCancelled),
	}
}

func eventData(missionID string, kind notification.EventKind) map[string]string {
	return map[string]string{
		"missionId": missionID,
		"type":      string(kind),
	}
}
