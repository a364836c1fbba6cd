package calendar

import (
	"hangout-api/core/database"
	"hangout-api/core/middleware"
	"hangout-api/modules/calendar/controller"
	"hangout-api/modules/calendar/repository"
	"hangout-api/modules/calendar/router"
	"hangout-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes. The returned
// service is the upstream calendar-data supplier for the availability module.
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo, nil)
	ctrl := controller.NewCalendarController(svc)

	router.NewCalendarRouter(ctrl).Register(e, mw)

	return svc
}
