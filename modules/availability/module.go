package availability

import (
	"hangout-api/core/cache"
	"hangout-api/core/database"
	"hangout-api/core/middleware"
	"hangout-api/modules/availability/controller"
	"hangout-api/modules/availability/router"
	"hangout-api/modules/availability/service"
	calendarService "hangout-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Group, db database.Database, cacheClient cache.Cache, mw *middleware.Middleware, calendars calendarService.CalendarService) service.AvailabilityServiceInterface {
	svc := service.NewAvailabilityService(calendars, cacheClient)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Register(e, mw)

	return svc
}
