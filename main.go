package main

import (
	"hangout-api/core/logger"
	"hangout-api/core/server"
)

// @title Hangout API
// @version 1.0
// @description Backend for the Hangout social activity planner: shared free-time
// @description discovery, activity suggestions and mutual matching.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
