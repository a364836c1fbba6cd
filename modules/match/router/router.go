package router

import (
	"hangout-api/core/middleware"
	"hangout-api/modules/match/controller"

	"github.com/labstack/echo/v4"
)

type MatchRouter struct {
	controller *controller.MatchController
}

func NewMatchRouter(controller *controller.MatchController) *MatchRouter {
	return &MatchRouter{controller: controller}
}

func (r *MatchRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/matches", mw.AuthMiddleware())
	group.POST("/swipes", r.controller.Swipe)
	group.GET("", r.controller.GetMyMatches)
	group.GET("/pending", r.controller.GetPendingProposals)
}
