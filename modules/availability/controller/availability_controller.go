package controller

import (
	"fmt"
	"time"

	"hangout-api/core/constants"
	"hangout-api/core/controller"
	"hangout-api/core/errors"
	"hangout-api/core/utils"
	"hangout-api/modules/availability/dto"
	"hangout-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	service service.AvailabilityServiceInterface
	controller.BaseController
}

func NewAvailabilityController(service service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
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

// FindWindows computes mutual free windows for the caller and their friends
// @Summary Find mutual free time windows
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FindWindowsRequest true "Participants and date range"
// @Success 200 {object} dto.FindWindowsResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/windows [post]
func (c *AvailabilityController) FindWindows(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.FindWindowsRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	userIDs := []uuid.UUID{userID}
	for _, idStr := range req.FriendIDs {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return c.BadRequest(errors.ErrInvalidInput, fmt.Sprintf("Invalid friend ID: %s", idStr))
		}
		if id != userID {
			userIDs = append(userIDs, id)
		}
	}

	startDate := time.Now()
	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid start_date format")
		}
	}

	endDate := startDate.AddDate(0, 0, constants.DefaultSearchDays)
	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid end_date format")
		}
	}

	windows, appErr := c.service.FindMutualFreeWindows(ctx.Request().Context(), userIDs, startDate, endDate, req.MinDurationMinutes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	response := &dto.FindWindowsResponse{
		Windows: make([]dto.FreeWindowDTO, 0, len(windows)),
		Total:   len(windows),
	}
	for _, w := range windows {
		response.Windows = append(response.Windows, dto.ToFreeWindowDTO(w))
	}

	return c.SuccessResponse(ctx, response, "Free windows computed successfully")
}
