package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hangout-api/core/errors"
	"hangout-api/modules/availability/entity"
	calendarDto "hangout-api/modules/calendar/dto"
	calendarEntity "hangout-api/modules/calendar/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalendarService serves preferences and events from maps.
type fakeCalendarService struct {
	prefs      map[uuid.UUID]*calendarEntity.SchedulePreferences
	events     map[uuid.UUID][]calendarEntity.CalendarEvent
	eventsErr  *errors.AppError
	eventCalls int
}

func (f *fakeCalendarService) GetPreferences(ctx context.Context, userID uuid.UUID) (*calendarEntity.SchedulePreferences, *errors.AppError) {
	p, ok := f.prefs[userID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "Preferences not found", nil)
	}
	return p, nil
}

func (f *fakeCalendarService) GetEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]calendarEntity.CalendarEvent, *errors.AppError) {
	f.eventCalls++
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events[userID], nil
}

func (f *fakeCalendarService) ExchangeGoogleCode(ctx context.Context, userID uuid.UUID, req *calendarDto.ConnectGoogleRequest) (*calendarEntity.CalendarConnection, *errors.AppError) {
	return nil, nil
}

func (f *fakeCalendarService) GetConnections(ctx context.Context, userID uuid.UUID) ([]calendarDto.CalendarConnectionResponse, *errors.AppError) {
	return nil, nil
}

func (f *fakeCalendarService) DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) *errors.AppError {
	return nil
}

func (f *fakeCalendarService) CreateEvent(ctx context.Context, userID uuid.UUID, req *calendarDto.CreateEventRequest) (*calendarEntity.CalendarEvent, *errors.AppError) {
	return nil, nil
}

func (f *fakeCalendarService) DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) *errors.AppError {
	return nil
}

func (f *fakeCalendarService) SavePreferences(ctx context.Context, userID uuid.UUID, wakeMinutes, sleepMinutes int) *errors.AppError {
	return nil
}

// fakeCache is an in-memory Cache with JSON round-tripping like the redis one.
type fakeCache struct {
	data map[string][]byte
	sets int
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = data
	f.sets++
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, ok := f.data[key]
	if !ok {
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func calEvent(userID uuid.UUID, title string, start, end time.Time) calendarEntity.CalendarEvent {
	return calendarEntity.CalendarEvent{
		UserID:    userID,
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Source:    "manual",
	}
}

func TestBuildParticipantFromStoredCalendar(t *testing.T) {
	userID := uuid.New()
	cal := &fakeCalendarService{
		prefs: map[uuid.UUID]*calendarEntity.SchedulePreferences{
			userID: {UserID: userID, WakeMinutes: 8 * 60, SleepMinutes: 22 * 60},
		},
		events: map[uuid.UUID][]calendarEntity.CalendarEvent{
			userID: {calEvent(userID, "dentist", at(14, 0), at(15, 0))},
		},
	}
	svc := NewAvailabilityService(cal, newFakeCache())

	p, err := svc.BuildParticipant(context.Background(), userID, day, day)

	require.Nil(t, err)
	assert.Equal(t, userID, p.ID)
	assert.Equal(t, 8*60, p.WakeMinutes)
	assert.Equal(t, 22*60, p.SleepMinutes)
	require.Len(t, p.BusyEvents, 1)
	assert.Equal(t, "dentist", p.BusyEvents[0].Title)
}

func TestBuildParticipantMissingPreferences(t *testing.T) {
	cal := &fakeCalendarService{prefs: map[uuid.UUID]*calendarEntity.SchedulePreferences{}}
	svc := NewAvailabilityService(cal, newFakeCache())

	_, err := svc.BuildParticipant(context.Background(), uuid.New(), day, day)

	require.NotNil(t, err)
	assert.Equal(t, errors.ErrInvalidInput, err.Code)
}

func TestBuildParticipantEventFetchFailureMeansFullyBusy(t *testing.T) {
	userID := uuid.New()
	cal := &fakeCalendarService{
		prefs: map[uuid.UUID]*calendarEntity.SchedulePreferences{
			userID: {UserID: userID, WakeMinutes: 9 * 60, SleepMinutes: 17 * 60},
		},
		eventsErr: errors.NewAppError(errors.ErrInternalServer, "provider down", nil),
	}
	svc := NewAvailabilityService(cal, newFakeCache())

	p, err := svc.BuildParticipant(context.Background(), userID, day, day)

	// Unknown availability never raises and never invents free time: the
	// participant comes back blocked for the whole range.
	require.Nil(t, err)
	require.Len(t, p.BusyEvents, 1)
	assert.True(t, p.BusyEvents[0].Interval.Start.Before(day))
	assert.True(t, p.BusyEvents[0].Interval.End.After(day.AddDate(0, 0, 1)))

	finder := NewFreeTimeFinder()
	windows, ferr := finder.FindMutualFreeWindows([]entity.Participant{*p}, day, day)
	require.Nil(t, ferr)
	assert.Empty(t, windows)
}

func TestFindMutualFreeWindowsEndToEnd(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	cal := &fakeCalendarService{
		prefs: map[uuid.UUID]*calendarEntity.SchedulePreferences{
			alice: {UserID: alice, WakeMinutes: 9 * 60, SleepMinutes: 17 * 60},
			bob:   {UserID: bob, WakeMinutes: 10 * 60, SleepMinutes: 16 * 60},
		},
		events: map[uuid.UUID][]calendarEntity.CalendarEvent{
			alice: {calEvent(alice, "meeting", at(12, 0), at(13, 0))},
			bob:   {calEvent(bob, "lunch", at(12, 30), at(13, 30))},
		},
	}
	svc := NewAvailabilityService(cal, newFakeCache())

	windows, err := svc.FindMutualFreeWindows(context.Background(), []uuid.UUID{alice, bob}, day, day, 30)

	require.Nil(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, at(10, 0), windows[0].Start)
	assert.Equal(t, at(12, 0), windows[0].End)
	assert.Equal(t, at(13, 30), windows[1].Start)
	assert.Equal(t, at(16, 0), windows[1].End)
}

func TestFindMutualFreeWindowsMemoizes(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	cal := &fakeCalendarService{
		prefs: map[uuid.UUID]*calendarEntity.SchedulePreferences{
			alice: {UserID: alice, WakeMinutes: 9 * 60, SleepMinutes: 17 * 60},
			bob:   {UserID: bob, WakeMinutes: 10 * 60, SleepMinutes: 16 * 60},
		},
	}
	cacheClient := newFakeCache()
	svc := NewAvailabilityService(cal, cacheClient)
	ctx := context.Background()

	first, err := svc.FindMutualFreeWindows(ctx, []uuid.UUID{alice, bob}, day, day, 30)
	require.Nil(t, err)
	callsAfterFirst := cal.eventCalls
	assert.Equal(t, 1, cacheClient.sets)

	// Same request with the IDs flipped must hit the cache, not the calendars.
	second, err := svc.FindMutualFreeWindows(ctx, []uuid.UUID{bob, alice}, day, day, 30)
	require.Nil(t, err)
	assert.Equal(t, callsAfterFirst, cal.eventCalls)
	assert.Equal(t, len(first), len(second))
}

func TestFindMutualFreeWindowsValidatesInput(t *testing.T) {
	svc := NewAvailabilityService(&fakeCalendarService{}, newFakeCache())
	ctx := context.Background()

	_, err := svc.FindMutualFreeWindows(ctx, nil, day, day, 30)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrInvalidInput, err.Code)

	_, err = svc.FindMutualFreeWindows(ctx, []uuid.UUID{uuid.New()}, day, day.AddDate(0, 0, -1), 30)
	require.NotNil(t, err)
}
