package controller

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hangout-api/core/constants"
	"hangout-api/core/controller"
	"hangout-api/core/errors"
	"hangout-api/core/utils"
	"hangout-api/modules/calendar/dto"
	"hangout-api/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	service service.CalendarService
	controller.BaseController
}

func NewCalendarController(service service.CalendarService) *CalendarController {
	return &CalendarController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, fmt.Errorf("no token data in context")
	}
	return claims.UserID, nil
}

// parseClock converts "HH:MM" into minutes after midnight.
func parseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ConnectGoogle exchanges an OAuth code and stores the connection
// @Summary Connect Google Calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConnectGoogleRequest true "OAuth authorization code"
// @Router /private/calendar/connections/google [post]
func (c *CalendarController) ConnectGoogle(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.ConnectGoogleRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.Code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Authorization code is required")
	}

	conn, appErr := c.service.ExchangeGoogleCode(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.CalendarConnectionResponse{
		ID:            conn.ID.String(),
		Provider:      conn.Provider,
		CalendarEmail: conn.CalendarEmail,
		IsActive:      conn.IsActive,
		ConnectedAt:   conn.CreatedAt.Format(time.RFC3339),
	}, "Calendar connected successfully")
}

// GetConnections lists the user's calendar connections
// @Summary List calendar connections
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Router /private/calendar/connections [get]
func (c *CalendarController) GetConnections(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, appErr := c.service.GetConnections(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Connections retrieved successfully")
}

// Disconnect deactivates a calendar connection
// @Summary Disconnect a calendar provider
// @Tags Calendar
// @Security BearerAuth
// @Param provider path string true "Provider name"
// @Router /private/calendar/connections/{provider} [delete]
func (c *CalendarController) Disconnect(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	provider := ctx.Param("provider")
	if appErr := c.service.DisconnectCalendar(ctx.Request().Context(), userID, provider); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}

// CreateEvent adds a manual busy event
// @Summary Create a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event details"
// @Router /private/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := c.service.CreateEvent(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.EventResponse{
		ID:        event.ID.String(),
		Title:     event.Title,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		Source:    event.Source,
	}, "Event created successfully")
}

// GetEvents lists events in a time range
// @Summary List calendar events
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param start query string true "Range start (RFC3339)"
// @Param end query string true "Range end (RFC3339)"
// @Router /private/calendar/events [get]
func (c *CalendarController) GetEvents(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	start, err := time.Parse(time.RFC3339, ctx.QueryParam("start"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start parameter")
	}
	end, err := time.Parse(time.RFC3339, ctx.QueryParam("end"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid end parameter")
	}

	events, appErr := c.service.GetEvents(ctx.Request().Context(), userID, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, dto.EventResponse{
			ID:        e.ID.String(),
			Title:     e.Title,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Source:    e.Source,
		})
	}

	return c.SuccessResponse(ctx, result, "Events retrieved successfully")
}

// DeleteEvent removes a manual event
// @Summary Delete a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Router /private/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if appErr := c.service.DeleteEvent(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted")
}

// GetPreferences returns the user's wake/sleep window
// @Summary Get schedule preferences
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Router /private/calendar/preferences [get]
func (c *CalendarController) GetPreferences(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	prefs, appErr := c.service.GetPreferences(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.SchedulePreferencesResponse{
		WakeTime:  formatClock(prefs.WakeMinutes),
		SleepTime: formatClock(prefs.SleepMinutes),
	}, "Preferences retrieved successfully")
}

// SavePreferences stores the user's wake/sleep window
// @Summary Save schedule preferences
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SchedulePreferencesRequest true "Wake and sleep times"
// @Router /private/calendar/preferences [put]
func (c *CalendarController) SavePreferences(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.SchedulePreferencesRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	wake, err := parseClock(req.WakeTime)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid wake_time")
	}
	sleep, err := parseClock(req.SleepTime)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid sleep_time")
	}

	if appErr := c.service.SavePreferences(ctx.Request().Context(), userID, wake, sleep); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Preferences saved successfully")
}
