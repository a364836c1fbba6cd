package middleware

import (
	"hangout-api/core/constants"
	"hangout-api/core/controller"
	"hangout-api/core/errors"
	"hangout-api/core/logger"
	"hangout-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	base controller.BaseController
}

func NewMiddleware() *Middleware {
	return &Middleware{
		base: controller.NewBaseController(),
	}
}

// AuthMiddleware validates the bearer token and stores the claims in the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, appErr := utils.GetTokenFromHeader(ctx)
			if appErr != nil {
				return m.base.Unauthorized(appErr.Code, appErr.Message)
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return m.base.Unauthorized(errors.ErrUnauthorized, "invalid or expired token")
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return m.base.Unauthorized(errors.ErrUnauthorized, "token scope not allowed")
			}

			ctx.Set(constants.ContextTokenData, claims)
			return next(ctx)
		}
	}
}
