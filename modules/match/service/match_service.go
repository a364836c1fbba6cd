package service

import (
	"context"
	"time"

	"hangout-api/core/constants"
	"hangout-api/core/errors"
	"hangout-api/core/logger"
	"hangout-api/core/utils"
	"hangout-api/modules/match/dto"
	"hangout-api/modules/match/entity"
	"hangout-api/modules/match/repository"
	"hangout-api/modules/notification/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the slice of asynq.Client the service needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// MatchService handles swipe decisions and mutual-match promotion.
type MatchService struct {
	repo  repository.MatchRepositoryInterface
	queue TaskEnqueuer
}

// MatchServiceInterface defines the service contract
type MatchServiceInterface interface {
	RecordSwipe(ctx context.Context, actorID uuid.UUID, req *dto.SwipeRequest) (*dto.SwipeResponse, *errors.AppError)
	GetMyMatches(ctx context.Context, userID uuid.UUID) ([]dto.MatchResponse, *errors.AppError)
	GetPendingProposals(ctx context.Context, userID uuid.UUID) ([]dto.MatchResponse, *errors.AppError)
}

func NewMatchService(repo repository.MatchRepositoryInterface, queue TaskEnqueuer) MatchServiceInterface {
	return &MatchService{
		repo:  repo,
		queue: queue,
	}
}

// RecordSwipe stores one party's accept/reject. On accept it immediately
// checks for the reciprocal accept and promotes both rows to matched. The
// accept stands even when the promotion step fails; promotion is idempotent
// and re-runs on the next reciprocal accept.
func (s *MatchService) RecordSwipe(ctx context.Context, actorID uuid.UUID, req *dto.SwipeRequest) (*dto.SwipeResponse, *errors.AppError) {
	counterpartID, err := uuid.Parse(req.CounterpartID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid counterpart ID", err)
	}
	if counterpartID == actorID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cannot swipe on yourself", nil)
	}

	proposedTime, err := time.Parse(time.RFC3339, req.ProposedTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid proposed time format", err)
	}

	var status entity.DecisionStatus
	switch req.Decision {
	case "accept":
		status = entity.DecisionStatusAccepted
	case "reject":
		status = entity.DecisionStatusRejected
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Decision must be accept or reject", nil)
	}

	existing, err := s.repo.GetDecision(ctx, actorID, counterpartID, req.ActivityID, proposedTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up decision", err)
	}
	if existing != nil && existing.Decision == entity.DecisionStatusRejected {
		// Reject is terminal for this row.
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "This proposal was already rejected", nil)
	}

	decision := &entity.SwipeDecision{
		ActorID:       actorID,
		CounterpartID: counterpartID,
		ActivityID:    req.ActivityID,
		ActivityName:  req.ActivityName,
		ProposedTime:  proposedTime,
		Decision:      status,
		ShareCode:     utils.GenerateID(),
	}
	if existing != nil {
		decision.ShareCode = existing.ShareCode
		// An already-matched row stays matched; re-accepting must not replay
		// the promotion or its notification.
		decision.MatchedAt = existing.MatchedAt
	}

	if err := s.repo.UpsertDecision(ctx, decision); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to record swipe", err)
	}

	response := &dto.SwipeResponse{
		ID:        decision.ID.String(),
		Decision:  string(decision.Decision),
		ShareCode: decision.ShareCode,
		Matched:   decision.IsMatched(),
		MatchedAt: decision.MatchedAt,
	}

	if status != entity.DecisionStatusAccepted || decision.IsMatched() {
		return response, nil
	}

	matchedAt, err := s.repo.PromoteMutualAccept(ctx, decision)
	if err != nil {
		// The accept committed; promotion will be retried at the next accept
		// or by a reconciliation pass.
		logger.Error("MatchService:RecordSwipe:PromoteMutualAccept:Error:", err)
		return response, nil
	}

	if matchedAt != nil {
		response.Matched = true
		response.MatchedAt = matchedAt
		s.enqueueMatchNotification(ctx, decision, *matchedAt)
	}

	return response, nil
}

func (s *MatchService) enqueueMatchNotification(ctx context.Context, decision *entity.SwipeDecision, matchedAt time.Time) {
	if s.queue == nil {
		return
	}

	task, err := tasks.NewMatchFoundTask(tasks.MatchFoundPayload{
		UserIDs:      []uuid.UUID{decision.ActorID, decision.CounterpartID},
		ActivityID:   decision.ActivityID,
		ActivityName: decision.ActivityName,
		ProposedTime: decision.ProposedTime,
		MatchedAt:    matchedAt,
	})
	if err != nil {
		logger.Error("MatchService:enqueueMatchNotification:NewTask:Error:", err)
		return
	}

	if _, err := s.queue.EnqueueContext(ctx, task, asynq.Queue(constants.QueueNotifications)); err != nil {
		logger.Error("MatchService:enqueueMatchNotification:Enqueue:Error:", err)
	}
}

func (s *MatchService) GetMyMatches(ctx context.Context, userID uuid.UUID) ([]dto.MatchResponse, *errors.AppError) {
	matches, err := s.repo.GetMatchesForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get matches", err)
	}

	result := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, dto.ToMatchResponse(&m))
	}
	return result, nil
}

// GetPendingProposals lists accepts by others still waiting on this user.
func (s *MatchService) GetPendingProposals(ctx context.Context, userID uuid.UUID) ([]dto.MatchResponse, *errors.AppError) {
	pending, err := s.repo.GetPendingForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get pending proposals", err)
	}

	result := make([]dto.MatchResponse, 0, len(pending))
	for _, p := range pending {
		result = append(result, dto.ToMatchResponse(&p))
	}
	return result, nil
}
