package router

import (
	"hangout-api/core/middleware"
	"hangout-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{controller: controller}
}

func (r *CalendarRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/calendar", mw.AuthMiddleware())

	group.POST("/connections/google", r.controller.ConnectGoogle)
	group.GET("/connections", r.controller.GetConnections)
	group.DELETE("/connections/:provider", r.controller.Disconnect)

	group.POST("/events", r.controller.CreateEvent)
	group.GET("/events", r.controller.GetEvents)
	group.DELETE("/events/:id", r.controller.DeleteEvent)

	group.GET("/preferences", r.controller.GetPreferences)
	group.PUT("/preferences", r.controller.SavePreferences)
}
