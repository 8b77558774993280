// Package cron runs the delayed-task machinery: an asynq client that
// schedules follow-ups and a worker that delivers them.
package cron

import (
	"encoding/json"
	"time"

	"errandly/config"

	"github.com/hibiken/asynq"
)

const TypePaymentReminder = "reminder:payment"

// paymentReminderPayload is the task body for a settlement nudge.
type paymentReminderPayload struct {
	MissionID string `json:"missionId"`
	ClientID  string `json:"clientId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderScheduler enqueues delayed reminders on the asynq queue.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates a scheduler backed by the configured Redis.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// SchedulePaymentReminder enqueues a settlement nudge for the client,
// fired at the given time.
func (s *ReminderScheduler) SchedulePaymentReminder(missionID, clientID string, at time.Time) error {
	b, err := json.Marshal(paymentReminderPayload{MissionID: missionID, ClientID: clientID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypePaymentReminder, b)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(at))
	return err
}

// Close releases the underlying queue connection.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}
