package controller

import (
	"fmt"

	"hangout-api/core/constants"
	"hangout-api/core/controller"
	"hangout-api/core/errors"
	"hangout-api/core/utils"
	"hangout-api/modules/match/dto"
	"hangout-api/modules/match/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type MatchController struct {
	service service.MatchServiceInterface
	controller.BaseController
}

func NewMatchController(service service.MatchServiceInterface) *MatchController {
	return &MatchController{
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

// Swipe records an accept/reject decision on a proposed activity
// @Summary Record a swipe decision
// @Tags Match
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SwipeRequest true "Counterpart, activity and decision"
// @Success 200 {object} dto.SwipeResponse
// @Failure 400 {object} errors.AppError
// @Router /private/matches/swipes [post]
func (c *MatchController) Swipe(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.SwipeRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.RecordSwipe(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Swipe recorded successfully")
}

// GetMyMatches lists the caller's confirmed matches
// @Summary List confirmed matches
// @Tags Match
// @Security BearerAuth
// @Produce json
// @Router /private/matches [get]
func (c *MatchController) GetMyMatches(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, appErr := c.service.GetMyMatches(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Matches retrieved successfully")
}

// GetPendingProposals lists proposals waiting on the caller's decision
// @Summary List pending proposals
// @Tags Match
// @Security BearerAuth
// @Produce json
// @Router /private/matches/pending [get]
func (c *MatchController) GetPendingProposals(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, appErr := c.service.GetPendingProposals(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Pending proposals retrieved successfully")
}
