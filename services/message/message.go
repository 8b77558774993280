package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	messageRepo "errandly/database/repository/message"
	missionRepo "errandly/database/repository/mission"
	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/services/notification"
	"errandly/utils"

	"github.com/google/uuid"
)

// MessageService handles chat between the two parties of a mission.
type MessageService interface {
	// Send delivers a message from one mission party to the other.
	Send(ctx context.Context, senderID, missionID, content string) (*models.Message, error)
	// ListForMission returns a mission's messages, oldest first, and
	// marks the caller's unread messages as read.
	ListForMission(missionID, userID string) ([]models.Message, error)
	// UnreadCount counts unread messages addressed to the user.
	UnreadCount(userID string) (int64, error)
}

// DefaultMessageService is the production implementation.
type DefaultMessageService struct {
	Messages   messageRepo.MessageRepository
	Missions   missionRepo.MissionRepository
	Users      userRepo.UserRepository
	Dispatcher notification.Dispatcher
}

// Send delivers a message to the other party of the mission.
func (s *DefaultMessageService) Send(ctx context.Context, senderID, missionID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, utils.ValidationError("message content is required")
	}

	m, err := s.Missions.GetByID(missionID)
	if err != nil {
		if errors.Is(err, missionRepo.ErrNotFound) {
			return nil, utils.NotFoundError("mission not found")
		}
		return nil, err
	}

	if !m.IsParty(senderID) {
		return nil, utils.PermissionError("access denied")
	}

	var receiverID string
	if senderID == m.ClientID {
		receiverID = m.ProviderID()
	} else {
		receiverID = m.ClientID
	}
	if receiverID == "" {
		return nil, utils.ConflictError("mission has no provider yet")
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		MissionID:  missionID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.Messages.Create(msg); err != nil {
		return nil, err
	}

	if sender, err := s.Users.GetByID(senderID); err == nil {
		msg.Sender = sender.Summary()
		s.Dispatcher.Dispatch(ctx, notification.Event{
			Kind:        notification.NewMessage,
			RecipientID: receiverID,
			Title:       fmt.Sprintf("Message de %s", sender.FirstName),
			Body:        content,
			Data: map[string]string{
				"missionId": missionID,
				"type":      string(notification.NewMessage),
			},
		})
	}

	return msg, nil
}

// ListForMission returns a mission's messages, oldest first. Fetching
// the thread marks the caller's unread messages as read.
func (s *DefaultMessageService) ListForMission(missionID, userID string) ([]models.Message, error) {
	m, err := s.Missions.GetByID(missionID)
	if err != nil {
		if errors.Is(err, missionRepo.ErrNotFound) {
			return nil, utils.NotFoundError("mission not found")
		}
		return nil, err
	}

	if !m.IsParty(userID) {
		return nil, utils.PermissionError("access denied")
	}

	messages, err := s.Messages.ListForMission(missionID)
	if err != nil {
		return nil, err
	}

	if err := s.Messages.MarkRead(missionID, userID); err != nil {
		return nil, err
	}
	return messages, nil
}

// UnreadCount counts unread messages addressed to the user.
func (s *DefaultMessageService) UnreadCount(userID string) (int64, error) {
	return s.Messages.CountUnread(userID)
}
