package discovery

import (
	"hangout-api/core/cache"
	"hangout-api/core/middleware"
	availService "hangout-api/modules/availability/service"
	"hangout-api/modules/discovery/controller"
	"hangout-api/modules/discovery/router"
	"hangout-api/modules/discovery/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the discovery module and registers routes. Search and
// weather providers are injected here once a concrete client is configured;
// nil providers degrade to errors / neutral scoring respectively.
func Init(e *echo.Group, cacheClient cache.Cache, mw *middleware.Middleware, availability availService.AvailabilityServiceInterface) service.DiscoveryServiceInterface {
	svc := service.NewDiscoveryService(availability, nil, nil, cacheClient)
	ctrl := controller.NewDiscoveryController(svc)

	router.NewDiscoveryRouter(ctrl).Register(e, mw)

	return svc
}
