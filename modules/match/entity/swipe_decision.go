package entity

import (
	"time"

	"github.com/google/uuid"
)

// DecisionStatus is the state of one directional swipe decision.
type DecisionStatus string

const (
	DecisionStatusPending  DecisionStatus = "pending"
	DecisionStatusAccepted DecisionStatus = "accepted"
	DecisionStatusRejected DecisionStatus = "rejected"
)

// SwipeDecision is one party's decision on an (activity, proposed time) for a
// specific counterpart. Two reciprocal accepted rows promote together to a
// match by setting the same MatchedAt on both.
type SwipeDecision struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	ActorID       uuid.UUID      `db:"actor_id" json:"actor_id"`
	CounterpartID uuid.UUID      `db:"counterpart_id" json:"counterpart_id"`
	ActivityID    string         `db:"activity_id" json:"activity_id"`
	ActivityName  string         `db:"activity_name" json:"activity_name"`
	ProposedTime  time.Time      `db:"proposed_time" json:"proposed_time"`
	Decision      DecisionStatus `db:"decision" json:"decision"`
	ShareCode     string         `db:"share_code" json:"share_code"`
	MatchedAt     *time.Time     `db:"matched_at" json:"matched_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// IsMatched reports whether the row has been promoted.
func (d *SwipeDecision) IsMatched() bool {
	return d.MatchedAt != nil
}
