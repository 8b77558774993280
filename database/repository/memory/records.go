package memory

import (
	"time"

	messageRepo "errandly/database/repository/message"
	notificationRepo "errandly/database/repository/notification"
	ratingRepo "errandly/database/repository/rating"
	"errandly/models"
)

// MessageRepo is the in-memory MessageRepository.
type MessageRepo struct {
	s *Store
}

var _ messageRepo.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(message *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	message.CreatedAt = time.Now()
	c := *message
	r.s.messages = append(r.s.messages, &c)
	return nil
}

func (r *MessageRepo) ListForMission(missionID string) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var messages []models.Message
	for _, m := range r.s.messages {
		if m.MissionID == missionID {
			messages = append(messages, *m)
		}
	}
	return messages, nil
}

func (r *MessageRepo) MarkRead(missionID, receiverID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.messages {
		if m.MissionID == missionID && m.ReceiverID == receiverID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *MessageRepo) CountUnread(receiverID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, m := range r.s.messages {
		if m.ReceiverID == receiverID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

// RatingRepo is the in-memory RatingRepository.
type RatingRepo struct {
	s *Store
}

var _ ratingRepo.RatingRepository = (*RatingRepo)(nil)

func (r *RatingRepo) Create(rating *models.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rating.CreatedAt = time.Now()
	c := *rating
	r.s.ratings[rating.ID] = &c
	return nil
}

func (r *RatingRepo) GetByMissionID(missionID string) (*models.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rt := range r.s.ratings {
		if rt.MissionID == missionID {
			c := *rt
			return &c, nil
		}
	}
	return nil, ratingRepo.ErrNotFound
}

func (r *RatingRepo) ListForRated(ratedID string) ([]models.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ratings []models.Rating
	for _, rt := range r.s.ratings {
		if rt.RatedID == ratedID {
			ratings = append(ratings, *rt)
		}
	}
	return ratings, nil
}

// NotificationRepo is the in-memory NotificationRepository.
type NotificationRepo struct {
	s *Store
}

var _ notificationRepo.NotificationRepository = (*NotificationRepo)(nil)

func (r *NotificationRepo) Create(notification *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	notification.CreatedAt = time.Now()
	c := *notification
	r.s.notifications = append(r.s.notifications, &c)
	return nil
}

func (r *NotificationRepo) ListForUser(userID string) ([]models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var notifications []models.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		if r.s.notifications[i].UserID == userID {
			notifications = append(notifications, *r.s.notifications[i])
		}
	}
	return notifications, nil
}

func (r *NotificationRepo) MarkRead(id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}
