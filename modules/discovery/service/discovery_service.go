package service

import (
	"context"
	"fmt"
	"time"

	"hangout-api/core/cache"
	"hangout-api/core/constants"
	"hangout-api/core/errors"
	"hangout-api/core/logger"
	availEntity "hangout-api/modules/availability/entity"
	availService "hangout-api/modules/availability/service"
	"hangout-api/modules/discovery/dto"
	"hangout-api/modules/discovery/entity"

	"github.com/google/uuid"
)

// DiscoveryService runs the suggestion pipeline: resolve a free window, fetch
// and normalize candidates, score each against the window, then rank.
type DiscoveryService struct {
	availability availService.AvailabilityServiceInterface
	search       ActivitySearchProvider
	weather      WeatherProvider
	cache        cache.Cache
	scorer       *ActivityScorer
}

type DiscoveryServiceInterface interface {
	SuggestActivities(ctx context.Context, userID uuid.UUID, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, *errors.AppError)
	ScoreCandidates(window availEntity.FreeWindow, candidates []entity.CandidateActivity, sctx entity.ScoringContext) []entity.ScoredActivity
}

func NewDiscoveryService(
	availability availService.AvailabilityServiceInterface,
	search ActivitySearchProvider,
	weather WeatherProvider,
	cacheClient cache.Cache,
) DiscoveryServiceInterface {
	return &DiscoveryService{
		availability: availability,
		search:       search,
		weather:      weather,
		cache:        cacheClient,
		scorer:       NewActivityScorer(entity.DefaultScoreWeights()),
	}
}

// ScoreCandidates scores every candidate against one free window. Pure; no I/O.
func (s *DiscoveryService) ScoreCandidates(window availEntity.FreeWindow, candidates []entity.CandidateActivity, sctx entity.ScoringContext) []entity.ScoredActivity {
	scored := make([]entity.ScoredActivity, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, s.scorer.Score(c, window, sctx))
	}
	return scored
}

// SuggestActivities produces the ordered recommendation list for one free
// window shared by the caller and their friends.
func (s *DiscoveryService) SuggestActivities(ctx context.Context, userID uuid.UUID, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, *errors.AppError) {
	window, appErr := s.resolveWindow(ctx, userID, req)
	if appErr != nil {
		return nil, appErr
	}

	candidates, appErr := s.fetchCandidates(ctx, req, window)
	if appErr != nil {
		return nil, appErr
	}

	sctx := entity.ScoringContext{
		Weather:             s.lookupWeather(ctx, req.Latitude, req.Longitude, window.Start),
		BudgetMax:           req.BudgetMax,
		PreferredCategories: req.PreferredCategories,
		HistoryCategories:   req.HistoryCategories,
		OriginLatitude:      req.Latitude,
		OriginLongitude:     req.Longitude,
	}

	scored := s.ScoreCandidates(*window, candidates, sctx)

	opts := DefaultRankOptions()
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}
	ranked := Rank(scored, opts)

	response := &dto.SuggestionsResponse{
		Window:      dto.WindowDTO{Start: window.Start, End: window.End, ParticipantCount: window.ParticipantCount},
		Suggestions: make([]dto.SuggestionDTO, 0, len(ranked)),
	}
	for _, r := range ranked {
		response.Suggestions = append(response.Suggestions, dto.ToSuggestionDTO(r))
	}

	return response, nil
}

// resolveWindow uses the window given in the request, or computes mutual free
// windows for the party and picks the first one.
func (s *DiscoveryService) resolveWindow(ctx context.Context, userID uuid.UUID, req *dto.SuggestionsRequest) (*availEntity.FreeWindow, *errors.AppError) {
	if req.WindowStart != nil && req.WindowEnd != nil {
		interval, err := availEntity.NewTimeInterval(*req.WindowStart, *req.WindowEnd)
		if err != nil {
			return nil, err
		}
		count := len(req.FriendIDs) + 1
		return &availEntity.FreeWindow{TimeInterval: interval, ParticipantCount: count}, nil
	}

	userIDs := []uuid.UUID{userID}
	for _, idStr := range req.FriendIDs {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Invalid friend ID: %s", idStr), parseErr)
		}
		if id != userID {
			userIDs = append(userIDs, id)
		}
	}

	start := time.Now()
	end := start.AddDate(0, 0, constants.DefaultSearchDays)

	windows, appErr := s.availability.FindMutualFreeWindows(ctx, userIDs, start, end, 0)
	if appErr != nil {
		return nil, appErr
	}
	if len(windows) == 0 {
		return nil, errors.NewAppError(errors.ErrNotFound, "No mutual free time found in the next days", nil)
	}

	return &windows[0], nil
}

func (s *DiscoveryService) fetchCandidates(ctx context.Context, req *dto.SuggestionsRequest, window *availEntity.FreeWindow) ([]entity.CandidateActivity, *errors.AppError) {
	if s.search == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Activity search is not configured", nil)
	}

	raw, err := s.search.Search(ctx, SearchRequest{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		RadiusKm:  req.RadiusKm,
		Start:     window.Start,
		End:       window.End,
		Category:  req.Category,
	})
	if err != nil {
		logger.Error("DiscoveryService:fetchCandidates:Search:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Activity search failed", err)
	}

	candidates := make([]entity.CandidateActivity, 0, len(raw))
	for _, r := range raw {
		candidates = append(candidates, NormalizeActivity(r))
	}
	return candidates, nil
}

// lookupWeather returns a cached or freshly fetched snapshot, or nil when no
// provider is wired or the fetch fails. Missing weather is a neutral input.
func (s *DiscoveryService) lookupWeather(ctx context.Context, lat, lon float64, at time.Time) *entity.WeatherConditions {
	if s.weather == nil {
		return nil
	}

	key := fmt.Sprintf("%s%.3f:%.3f", constants.RedisKeyWeatherSnapshot, lat, lon)

	var cached cache.Entry[entity.WeatherConditions]
	if s.cache != nil {
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found && !cached.Expired() {
			return &cached.Value
		}
	}

	conditions, err := s.weather.GetConditions(ctx, lat, lon, at)
	if err != nil {
		logger.Warn("DiscoveryService:lookupWeather:Error", "error", err, "lat", lat, "lon", lon)
		return nil
	}
	if conditions == nil {
		return nil
	}

	if s.cache != nil {
		entry := cache.Entry[entity.WeatherConditions]{
			Value:     *conditions,
			ExpiresAt: time.Now().Add(constants.WeatherCacheTTL),
		}
		if err := s.cache.Set(ctx, key, entry, constants.WeatherCacheTTL); err != nil {
			logger.Warn("DiscoveryService:lookupWeather:CacheSet:Error", "error", err)
		}
	}

	return conditions
}
