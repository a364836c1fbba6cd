package router

import (
	"hangout-api/core/middleware"
	"hangout-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	controller *controller.AvailabilityController
}

func NewAvailabilityRouter(controller *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{controller: controller}
}

func (r *AvailabilityRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/availability", mw.AuthMiddleware())
	group.POST("/windows", r.controller.FindWindows)
}
