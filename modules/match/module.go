package match

import (
	"hangout-api/core/database"
	"hangout-api/core/middleware"
	"hangout-api/modules/match/controller"
	"hangout-api/modules/match/repository"
	"hangout-api/modules/match/router"
	"hangout-api/modules/match/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the match module and registers routes
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware, queue *asynq.Client) service.MatchServiceInterface {
	repo := repository.NewMatchRepository(db)
	svc := service.NewMatchService(repo, queue)
	ctrl := controller.NewMatchController(svc)

	router.NewMatchRouter(ctrl).Register(e, mw)

	return svc
}
