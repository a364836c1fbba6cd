package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hangout-api/core/cache"
	"hangout-api/core/config"
	"hangout-api/core/constants"
	"hangout-api/core/database"
	"hangout-api/core/logger"
	coreMiddleware "hangout-api/core/middleware"
	"hangout-api/modules/availability"
	"hangout-api/modules/calendar"
	"hangout-api/modules/discovery"
	"hangout-api/modules/match"
	"hangout-api/modules/notification"
	notifWorker "hangout-api/modules/notification/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server and the background worker, blocking until shutdown.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Init(config.Get("LOG_LEVEL"))

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     config.Get("DB_HOST"),
		Port:     config.GetInt("DB_PORT"),
		User:     config.Get("DB_USER"),
		Password: config.Get("DB_PASSWORD"),
		DBName:   config.Get("DB_NAME"),
		SSLMode:  config.Get("DB_SSLMODE"),
	})
	if err != nil {
		return err
	}

	redisAddr := config.Get("REDIS_ADDR")
	cacheClient := cache.NewRedisCache(cache.RedisConfig{
		Addr:     redisAddr,
		Password: config.Get("REDIS_PASSWORD"),
	})

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.Get("REDIS_PASSWORD"),
	})
	defer asynqClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())

	mw := coreMiddleware.NewMiddleware()
	v1 := e.Group("/api/v1/private")

	// Module wiring. Order matters: downstream modules receive upstream services.
	notifSvc := notification.Init(v1, db, mw)
	calendarSvc := calendar.Init(v1, db, mw)
	availabilitySvc := availability.Init(v1, db, cacheClient, mw, calendarSvc)
	discovery.Init(v1, cacheClient, mw, availabilitySvc)
	match.Init(v1, db, mw, asynqClient)

	// Background worker consuming match-promotion tasks.
	worker := notifWorker.NewWorker(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.Get("REDIS_PASSWORD"),
	}, notifSvc)
	go func() {
		if err := worker.Run(); err != nil {
			logger.Error("Server:Worker:Run:Error", err)
		}
	}()

	port := config.GetInt("SERVER_PORT")
	if port == 0 {
		port = constants.DefaultServerPort
	}

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
			logger.Info("Server stopped", "error", err)
		}
	}()
	logger.Info("Server started", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	worker.Shutdown()
	return e.Shutdown(ctx)
}
