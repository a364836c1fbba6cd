package controller

import (
	"fmt"

	"hangout-api/core/constants"
	"hangout-api/core/controller"
	"hangout-api/core/errors"
	"hangout-api/core/utils"
	"hangout-api/modules/discovery/dto"
	"hangout-api/modules/discovery/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type DiscoveryController struct {
	service service.DiscoveryServiceInterface
	controller.BaseController
}

func NewDiscoveryController(service service.DiscoveryServiceInterface) *DiscoveryController {
	return &DiscoveryController{
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

// Suggestions returns the ranked activity feed for a shared free window
// @Summary Get activity suggestions
// @Tags Discovery
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SuggestionsRequest true "Party, location and preference signals"
// @Success 200 {object} dto.SuggestionsResponse
// @Failure 400 {object} errors.AppError
// @Router /private/discovery/suggestions [post]
func (c *DiscoveryController) Suggestions(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.SuggestionsRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.SuggestActivities(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Suggestions computed successfully")
}
