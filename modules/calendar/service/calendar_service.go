package service

import (
	"context"
	"fmt"
	"time"

	"hangout-api/core/config"
	"hangout-api/core/errors"
	"hangout-api/core/logger"
	"hangout-api/modules/calendar/dto"
	"hangout-api/modules/calendar/entity"
	"hangout-api/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// FreeBusyProvider fetches busy intervals from an external calendar API.
// The fetch itself lives outside this service; implementations are injected.
type FreeBusyProvider interface {
	FetchBusy(ctx context.Context, conn *entity.CalendarConnection, start, end time.Time) ([]entity.CalendarEvent, error)
}

type CalendarService interface {
	// Connection management
	ExchangeGoogleCode(ctx context.Context, userID uuid.UUID, req *dto.ConnectGoogleRequest) (*entity.CalendarConnection, *errors.AppError)
	GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.CalendarConnectionResponse, *errors.AppError)
	DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) *errors.AppError

	// Events
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*entity.CalendarEvent, *errors.AppError)
	GetEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CalendarEvent, *errors.AppError)
	DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) *errors.AppError

	// Schedule preferences
	GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.SchedulePreferences, *errors.AppError)
	SavePreferences(ctx context.Context, userID uuid.UUID, wakeMinutes, sleepMinutes int) *errors.AppError
}

type calendarService struct {
	repo     repository.CalendarRepositoryInterface
	freeBusy FreeBusyProvider // optional, nil when no provider is wired
}

func NewCalendarService(repo repository.CalendarRepositoryInterface, freeBusy FreeBusyProvider) CalendarService {
	return &calendarService{
		repo:     repo,
		freeBusy: freeBusy,
	}
}

func googleOAuthConfig(redirectURI string) (*oauth2.Config, error) {
	clientID, err := config.GetSafe("GOOGLE_CLIENT_ID")
	if err != nil {
		return nil, err
	}
	clientSecret, err := config.GetSafe("GOOGLE_CLIENT_SECRET")
	if err != nil {
		return nil, err
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/calendar.readonly"},
		Endpoint:     google.Endpoint,
	}, nil
}

// ExchangeGoogleCode trades an OAuth authorization code for tokens and stores
// the connection. Token refresh mechanics beyond stored expiry stay external.
func (s *calendarService) ExchangeGoogleCode(ctx context.Context, userID uuid.UUID, req *dto.ConnectGoogleRequest) (*entity.CalendarConnection, *errors.AppError) {
	oauthCfg, err := googleOAuthConfig(req.RedirectURI)
	if err != nil {
		logger.Error("CalendarService:ExchangeGoogleCode:Config:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google OAuth is not configured", err)
	}

	token, err := oauthCfg.Exchange(ctx, req.Code)
	if err != nil {
		logger.Error("CalendarService:ExchangeGoogleCode:Exchange:Error:", err)
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Failed to exchange authorization code", err)
	}

	email, _ := token.Extra("email").(string)

	existing, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up connection", err)
	}

	if existing != nil {
		existing.AccessToken = token.AccessToken
		existing.RefreshToken = token.RefreshToken
		existing.TokenExpiresAt = token.Expiry
		existing.CalendarEmail = email
		existing.IsActive = true

		if err := s.repo.UpdateConnection(ctx, existing); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update connection", err)
		}
		return existing, nil
	}

	conn := &entity.CalendarConnection{
		UserID:         userID,
		Provider:       entity.ProviderGoogle,
		AccessToken:    token.AccessToken,
		RefreshToken:   token.RefreshToken,
		TokenExpiresAt: token.Expiry,
		CalendarEmail:  email,
		IsActive:       true,
	}

	created, err := s.repo.CreateConnection(ctx, conn)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save connection", err)
	}
	return created, nil
}

func (s *calendarService) GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.CalendarConnectionResponse, *errors.AppError) {
	connections, err := s.repo.GetConnectionsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get connections", err)
	}

	var result []dto.CalendarConnectionResponse
	for _, conn := range connections {
		result = append(result, dto.CalendarConnectionResponse{
			ID:            conn.ID.String(),
			Provider:      conn.Provider,
			CalendarEmail: conn.CalendarEmail,
			IsActive:      conn.IsActive,
			ConnectedAt:   conn.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *calendarService) DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) *errors.AppError {
	if err := s.repo.DeleteConnection(ctx, userID, provider); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to disconnect calendar", err)
	}
	return nil
}

func (s *calendarService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*entity.CalendarEvent, *errors.AppError) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time format", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid end time format", err)
	}
	if !startTime.Before(endTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event start must be before end", nil)
	}

	event := &entity.CalendarEvent{
		UserID:    userID,
		Title:     req.Title,
		StartTime: startTime,
		EndTime:   endTime,
		Source:    "manual",
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	if err := s.repo.SaveEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save event", err)
	}
	return event, nil
}

// GetEvents returns stored events intersecting the range, merged with the
// external provider's busy entries when one is wired. Provider failure only
// reduces data, it never fails the call.
func (s *calendarService) GetEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CalendarEvent, *errors.AppError) {
	events, err := s.repo.GetEventsByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get events", err)
	}

	if s.freeBusy != nil {
		conn, connErr := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)
		if connErr == nil && conn != nil {
			remote, fetchErr := s.freeBusy.FetchBusy(ctx, conn, start, end)
			if fetchErr != nil {
				logger.Warn("CalendarService:GetEvents:FetchBusy:Error", "error", fetchErr, "user_id", userID)
			} else {
				events = append(events, remote...)
			}
		}
	}

	return events, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteEvent(ctx, userID, eventID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event", err)
	}
	return nil
}

func (s *calendarService) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.SchedulePreferences, *errors.AppError) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get preferences", err)
	}
	if prefs == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Schedule preferences not set", nil)
	}
	return prefs, nil
}

func (s *calendarService) SavePreferences(ctx context.Context, userID uuid.UUID, wakeMinutes, sleepMinutes int) *errors.AppError {
	if wakeMinutes < 0 || sleepMinutes > 24*60 || wakeMinutes >= sleepMinutes {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Invalid wake/sleep window: %d-%d", wakeMinutes, sleepMinutes), nil)
	}

	prefs := &entity.SchedulePreferences{
		UserID:       userID,
		WakeMinutes:  wakeMinutes,
		SleepMinutes: sleepMinutes,
	}
	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save preferences", err)
	}
	return nil
}
