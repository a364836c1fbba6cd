package router

import (
	"hangout-api/core/middleware"
	"hangout-api/modules/discovery/controller"

	"github.com/labstack/echo/v4"
)

type DiscoveryRouter struct {
	controller *controller.DiscoveryController
}

func NewDiscoveryRouter(controller *controller.DiscoveryController) *DiscoveryRouter {
	return &DiscoveryRouter{controller: controller}
}

func (r *DiscoveryRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/discovery", mw.AuthMiddleware())
	group.POST("/suggestions", r.controller.Suggestions)
}
