package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hangout-api/core/cache"
	"hangout-api/core/constants"
	"hangout-api/core/errors"
	"hangout-api/core/logger"
	"hangout-api/modules/availability/entity"
	calendarService "hangout-api/modules/calendar/service"

	"github.com/google/uuid"
)

// AvailabilityService assembles participants from stored calendars and runs
// the free-time intersection engine over them.
type AvailabilityService struct {
	calendars calendarService.CalendarService
	cache     cache.Cache
	finder    *FreeTimeFinder
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	FindMutualFreeWindows(ctx context.Context, userIDs []uuid.UUID, startDate, endDate time.Time, minDurationMinutes int) ([]entity.FreeWindow, *errors.AppError)
	BuildParticipant(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*entity.Participant, *errors.AppError)
}

func NewAvailabilityService(calendars calendarService.CalendarService, cacheClient cache.Cache) AvailabilityServiceInterface {
	return &AvailabilityService{
		calendars: calendars,
		cache:     cacheClient,
		finder:    NewFreeTimeFinder(),
	}
}

// BuildParticipant loads one user's wake/sleep window and busy events for the
// range. Missing preferences are a configuration error; the engine never
// guesses defaults on the caller's behalf.
func (s *AvailabilityService) BuildParticipant(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*entity.Participant, *errors.AppError) {
	prefs, appErr := s.calendars.GetPreferences(ctx, userID)
	if appErr != nil {
		if appErr.Code == errors.ErrNotFound {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("User %s has no wake/sleep window configured", userID), nil)
		}
		return nil, appErr
	}

	// A failed event fetch makes the participant fully busy for the range:
	// unknown availability reduces the intersection, it never raises and it
	// never invents free time.
	events, appErr := s.calendars.GetEvents(ctx, userID, startDate, endDate.AddDate(0, 0, 1))
	if appErr != nil {
		logger.Warn("AvailabilityService:BuildParticipant:GetEvents:Error", "error", appErr, "user_id", userID)
		blocked := entity.TimeInterval{Start: startDate.AddDate(0, 0, -1), End: endDate.AddDate(0, 0, 2)}
		return &entity.Participant{
			ID:           userID,
			WakeMinutes:  prefs.WakeMinutes,
			SleepMinutes: prefs.SleepMinutes,
			BusyEvents:   []entity.BusyEvent{{Title: "unavailable", Interval: blocked}},
		}, nil
	}

	busy := make([]entity.BusyEvent, 0, len(events))
	for _, ev := range events {
		interval, err := entity.NewTimeInterval(ev.StartTime, ev.EndTime)
		if err != nil {
			logger.Warn("AvailabilityService:BuildParticipant:SkipEvent", "event_id", ev.ID, "error", err)
			continue
		}
		busy = append(busy, entity.BusyEvent{Title: ev.Title, Interval: interval})
	}

	return &entity.Participant{
		ID:           userID,
		WakeMinutes:  prefs.WakeMinutes,
		SleepMinutes: prefs.SleepMinutes,
		BusyEvents:   busy,
	}, nil
}

// FindMutualFreeWindows computes shared free windows for the users across the
// date range. Results are memoized briefly since the feed and the suggestion
// endpoint both ask for the same window within one interaction.
func (s *AvailabilityService) FindMutualFreeWindows(ctx context.Context, userIDs []uuid.UUID, startDate, endDate time.Time, minDurationMinutes int) ([]entity.FreeWindow, *errors.AppError) {
	if len(userIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "At least one participant is required", nil)
	}
	if endDate.Before(startDate) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "End date must not be before start date", nil)
	}
	if minDurationMinutes <= 0 {
		minDurationMinutes = constants.DefaultMinFreeMinutes
	}

	cacheKey := windowsCacheKey(userIDs, startDate, endDate, minDurationMinutes)
	var cached cache.Entry[[]entity.FreeWindow]
	if s.cache != nil {
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found && !cached.Expired() {
			return cached.Value, nil
		}
	}

	participants := make([]entity.Participant, 0, len(userIDs))
	for _, id := range userIDs {
		p, appErr := s.BuildParticipant(ctx, id, startDate, endDate)
		if appErr != nil {
			return nil, appErr
		}
		participants = append(participants, *p)
	}

	finder := *s.finder
	finder.MinDurationMinutes = minDurationMinutes

	windows, appErr := finder.FindMutualFreeWindows(participants, startDate, endDate)
	if appErr != nil {
		return nil, appErr
	}

	if s.cache != nil {
		entry := cache.Entry[[]entity.FreeWindow]{
			Value:     windows,
			ExpiresAt: time.Now().Add(constants.FreeWindowsCacheTTL),
		}
		if err := s.cache.Set(ctx, cacheKey, entry, constants.FreeWindowsCacheTTL); err != nil {
			logger.Warn("AvailabilityService:FindMutualFreeWindows:CacheSet:Error", "error", err)
		}
	}

	return windows, nil
}

func windowsCacheKey(userIDs []uuid.UUID, startDate, endDate time.Time, minDuration int) string {
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return fmt.Sprintf("%s%s:%s:%s:%d",
		constants.RedisKeyFreeWindows,
		strings.Join(ids, ","),
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
		minDuration,
	)
}
