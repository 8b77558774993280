package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	missionRepo "errandly/database/repository/mission"
	paymentRepo "errandly/database/repository/payment"
	"errandly/models"
	"errandly/services/notification"
	"errandly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async worker in the background.
func InitReminderWorker(missions missionRepo.MissionRepository, payments paymentRepo.PaymentRepository, dispatcher notification.Dispatcher) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePaymentReminder, handlePaymentReminder(missions, payments, dispatcher))

	go func() {
		logger := utils.GetLogger()
		logger.Info("reminder worker starting")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

// handlePaymentReminder nudges the client to settle a completed mission.
// The nudge is dropped when a payment already exists or the mission left
// the COMPLETED state.
func handlePaymentReminder(missions missionRepo.MissionRepository, payments paymentRepo.PaymentRepository, dispatcher notification.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p paymentReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("payment reminder: invalid payload", zap.Error(err))
			return err
		}

		m, err := missions.GetByID(p.MissionID)
		if err != nil {
			if errors.Is(err, missionRepo.ErrNotFound) {
				return nil
			}
			return err
		}
		if m.Status != models.MissionCompleted {
			return nil
		}

		if _, err := payments.GetByMissionID(p.MissionID); err == nil {
			return nil
		} else if !errors.Is(err, paymentRepo.ErrNotFound) {
			return err
		}

		dispatcher.Dispatch(ctx, notification.Event{
			Kind:        notification.PaymentReminder,
			RecipientID: p.ClientID,
			Title:       "Paiement en attente",
			Body:        fmt.Sprintf("N'oubliez pas de régler la mission « %s »", m.Title),
			Data: map[string]string{
				"missionId": m.ID,
				"type":      string(notification.PaymentReminder),
			},
		})
		return nil
	}
}
