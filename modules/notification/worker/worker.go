package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"hangout-api/core/constants"
	"hangout-api/core/logger"
	"hangout-api/modules/notification/dto"
	"hangout-api/modules/notification/entity"
	"hangout-api/modules/notification/service"
	"hangout-api/modules/notification/tasks"

	"github.com/hibiken/asynq"
)

// Worker consumes background tasks and turns them into stored notifications.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	service *service.NotificationService
}

func NewWorker(redisOpt asynq.RedisClientOpt, notifSvc *service.NotificationService) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			constants.QueueNotifications: 10,
			constants.QueueDefault:       1,
		},
	})

	w := &Worker{
		server:  server,
		mux:     asynq.NewServeMux(),
		service: notifSvc,
	}
	w.mux.HandleFunc(tasks.TypeMatchFound, w.handleMatchFound)

	return w
}

// Run blocks until the server is shut down.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleMatchFound(ctx context.Context, t *asynq.Task) error {
	var payload tasks.MatchFoundPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("NotificationWorker:HandleMatchFound:Unmarshal:Error:", err)
		return fmt.Errorf("unmarshal match payload: %w: %w", err, asynq.SkipRetry)
	}

	message := fmt.Sprintf("It's a match! You're both in for %s at %s.",
		payload.ActivityName, payload.ProposedTime.Format("Mon Jan 2, 15:04"))

	for _, userID := range payload.UserIDs {
		req := &dto.CreateNotificationRequest{
			UserID:  userID,
			Title:   "Match confirmed",
			Message: message,
			Type:    entity.TypeMatchFound,
			Data: map[string]interface{}{
				"activity_id":   payload.ActivityID,
				"activity_name": payload.ActivityName,
				"proposed_time": payload.ProposedTime,
				"matched_at":    payload.MatchedAt,
			},
		}
		if err := w.service.Create(ctx, req); err != nil {
			logger.Error("NotificationWorker:HandleMatchFound:Create:Error:", err)
			return err
		}
	}

	return nil
}
