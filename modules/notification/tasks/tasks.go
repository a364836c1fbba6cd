package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// TypeMatchFound is dispatched when both parties accept the same activity
	// at the same proposed time.
	TypeMatchFound = "notification:match_found"
)

// MatchFoundPayload notifies both parties of a confirmed match.
type MatchFoundPayload struct {
	UserIDs      []uuid.UUID `json:"user_ids"`
	ActivityID   string      `json:"activity_id"`
	ActivityName string      `json:"activity_name"`
	ProposedTime time.Time   `json:"proposed_time"`
	MatchedAt    time.Time   `json:"matched_at"`
}

func NewMatchFoundTask(payload MatchFoundPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMatchFound, data), nil
}
