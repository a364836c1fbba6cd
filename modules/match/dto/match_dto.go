package dto

import (
	"time"

	"hangout-api/modules/match/entity"
)

type SwipeRequest struct {
	CounterpartID string `json:"counterpart_id" validate:"required"`
	ActivityID    string `json:"activity_id" validate:"required"`
	ActivityName  string `json:"activity_name"`
	ProposedTime  string `json:"proposed_time" validate:"required"` // RFC3339
	Decision      string `json:"decision" validate:"required"`      // "accept" | "reject"
}

type SwipeResponse struct {
	ID        string     `json:"id"`
	Decision  string     `json:"decision"`
	ShareCode string     `json:"share_code"`
	Matched   bool       `json:"matched"`
	MatchedAt *time.Time `json:"matched_at,omitempty"`
}

type MatchResponse struct {
	ID            string     `json:"id"`
	ActorID       string     `json:"actor_id"`
	CounterpartID string     `json:"counterpart_id"`
	ActivityID    string     `json:"activity_id"`
	ActivityName  string     `json:"activity_name"`
	ProposedTime  time.Time  `json:"proposed_time"`
	Decision      string     `json:"decision"`
	ShareCode     string     `json:"share_code"`
	MatchedAt     *time.Time `json:"matched_at,omitempty"`
}

func ToMatchResponse(d *entity.SwipeDecision) MatchResponse {
	return MatchResponse{
		ID:            d.ID.String(),
		ActorID:       d.ActorID.String(),
		CounterpartID: d.CounterpartID.String(),
		ActivityID:    d.ActivityID,
		ActivityName:  d.ActivityName,
		ProposedTime:  d.ProposedTime,
		Decision:      string(d.Decision),
		ShareCode:     d.ShareCode,
		MatchedAt:     d.MatchedAt,
	}
}
