package repository

import (
	"context"
	"database/sql"
	"time"

	"hangout-api/core/database"
	"hangout-api/core/logger"
	"hangout-api/modules/match/entity"

	"github.com/google/uuid"
)

// MatchRepository handles swipe decision storage and the transactional
// mutual-accept promotion.
type MatchRepository struct {
	DB database.Database
}

func NewMatchRepository(db database.Database) *MatchRepository {
	return &MatchRepository{DB: db}
}

// MatchRepositoryInterface defines the repository contract
type MatchRepositoryInterface interface {
	UpsertDecision(ctx context.Context, decision *entity.SwipeDecision) error
	GetDecision(ctx context.Context, actorID, counterpartID uuid.UUID, activityID string, proposedTime time.Time) (*entity.SwipeDecision, error)
	PromoteMutualAccept(ctx context.Context, decision *entity.SwipeDecision) (*time.Time, error)
	GetMatchesForUser(ctx context.Context, userID uuid.UUID) ([]entity.SwipeDecision, error)
	GetPendingForUser(ctx context.Context, userID uuid.UUID) ([]entity.SwipeDecision, error)
}

// UpsertDecision writes the decision row in its own statement. The row commits
// independently of any later promotion attempt, so a failed match check never
// rolls an accept back.
func (r *MatchRepository) UpsertDecision(ctx context.Context, decision *entity.SwipeDecision) error {
	query := `
		INSERT INTO swipe_decisions (actor_id, counterpart_id, activity_id, activity_name, proposed_time, decision, share_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (actor_id, counterpart_id, activity_id, proposed_time)
		DO UPDATE SET decision = EXCLUDED.decision, updated_at = NOW()
		RETURNING id, matched_at, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		decision.ActorID, decision.CounterpartID, decision.ActivityID, decision.ActivityName,
		decision.ProposedTime, decision.Decision, decision.ShareCode,
	).Scan(&decision.ID, &decision.MatchedAt, &decision.CreatedAt, &decision.UpdatedAt)
	if err != nil {
		logger.Error("MatchRepository:UpsertDecision:Error:", err)
		return err
	}
	return nil
}

func (r *MatchRepository) GetDecision(ctx context.Context, actorID, counterpartID uuid.UUID, activityID string, proposedTime time.Time) (*entity.SwipeDecision, error) {
	query := `
		SELECT id, actor_id, counterpart_id, activity_id, activity_name, proposed_time, decision, share_code, matched_at, created_at, updated_at
		FROM swipe_decisions
		WHERE actor_id = $1 AND counterpart_id = $2 AND activity_id = $3 AND proposed_time = $4
	`

	var decision entity.SwipeDecision
	err := r.DB.GetContext(ctx, &decision, query, actorID, counterpartID, activityID, proposedTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MatchRepository:GetDecision:Error:", err)
		return nil, err
	}
	return &decision, nil
}

// PromoteMutualAccept checks, inside one transaction, whether the reciprocal
// accept exists for the swapped actor/counterpart pair with the same activity
// and proposed time, and if so stamps the same matched_at on both rows. Row
// locks on the reciprocal row keep two near-simultaneous accepts from missing
// each other. Returns the match timestamp, or nil when there is no match yet.
// Idempotent: an already-promoted pair returns its existing timestamp.
func (r *MatchRepository) PromoteMutualAccept(ctx context.Context, decision *entity.SwipeDecision) (*time.Time, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var reciprocal entity.SwipeDecision
	query := `
		SELECT id, actor_id, counterpart_id, activity_id, activity_name, proposed_time, decision, share_code, matched_at, created_at, updated_at
		FROM swipe_decisions
		WHERE actor_id = $1 AND counterpart_id = $2 AND activity_id = $3 AND proposed_time = $4 AND decision = $5
		FOR UPDATE
	`
	err = tx.GetContext(ctx, &reciprocal, query,
		decision.CounterpartID, decision.ActorID, decision.ActivityID, decision.ProposedTime,
		entity.DecisionStatusAccepted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MatchRepository:PromoteMutualAccept:Select:Error:", err)
		return nil, err
	}

	matchedAt := time.Now().UTC()
	if reciprocal.MatchedAt != nil {
		matchedAt = *reciprocal.MatchedAt
	}

	update := `
		UPDATE swipe_decisions
		SET matched_at = $1, updated_at = NOW()
		WHERE activity_id = $2 AND proposed_time = $3 AND matched_at IS NULL
		  AND ((actor_id = $4 AND counterpart_id = $5) OR (actor_id = $5 AND counterpart_id = $4))
	`
	if _, err := tx.ExecContext(ctx, update,
		matchedAt, decision.ActivityID, decision.ProposedTime,
		decision.ActorID, decision.CounterpartID); err != nil {
		logger.Error("MatchRepository:PromoteMutualAccept:Update:Error:", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("MatchRepository:PromoteMutualAccept:Commit:Error:", err)
		return nil, err
	}

	decision.MatchedAt = &matchedAt
	return &matchedAt, nil
}

func (r *MatchRepository) GetMatchesForUser(ctx context.Context, userID uuid.UUID) ([]entity.SwipeDecision, error) {
	query := `
		SELECT id, actor_id, counterpart_id, activity_id, activity_name, proposed_time, decision, share_code, matched_at, created_at, updated_at
		FROM swipe_decisions
		WHERE actor_id = $1 AND matched_at IS NOT NULL
		ORDER BY matched_at DESC
	`

	var matches []entity.SwipeDecision
	err := r.DB.SelectContext(ctx, &matches, query, userID)
	if err != nil {
		logger.Error("MatchRepository:GetMatchesForUser:Error:", err)
		return nil, err
	}
	return matches, nil
}

func (r *MatchRepository) GetPendingForUser(ctx context.Context, userID uuid.UUID) ([]entity.SwipeDecision, error) {
	query := `
		SELECT id, actor_id, counterpart_id, activity_id, activity_name, proposed_time, decision, share_code, matched_at, created_at, updated_at
		FROM swipe_decisions s
		WHERE s.counterpart_id = $1 AND s.decision = $2 AND s.matched_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM swipe_decisions mine
			WHERE mine.actor_id = s.counterpart_id AND mine.counterpart_id = s.actor_id
			  AND mine.activity_id = s.activity_id AND mine.proposed_time = s.proposed_time
		  )
		ORDER BY s.created_at DESC
	`

	var pending []entity.SwipeDecision
	err := r.DB.SelectContext(ctx, &pending, query, userID, entity.DecisionStatusAccepted)
	if err != nil {
		logger.Error("MatchRepository:GetPendingForUser:Error:", err)
		return nil, err
	}
	return pending, nil
}
