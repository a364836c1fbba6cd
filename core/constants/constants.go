package constants

import "time"

// Server
const (
	DefaultServerPort     = 7070
	DefaultRequestTimeout = 30 * time.Second
	ShutdownTimeout       = 10 * time.Second
)

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Auth
const (
	ContextTokenData = "token_data"
	ScopeTokenAccess = "access"
)

// Redis key prefixes
const (
	RedisKeyWeatherSnapshot = "weather:snapshot:"
	RedisKeyFreeWindows     = "availability:windows:"
)

// Cache TTLs
const (
	WeatherCacheTTL     = 15 * time.Minute
	FreeWindowsCacheTTL = 2 * time.Minute
)

// Availability defaults
const (
	DefaultMinFreeMinutes         = 30
	DefaultSlotGranularityMinutes = 60
	DefaultSearchDays             = 7
)

// Scoring defaults
const (
	DefaultMinSuggestionScore = 35
	DefaultSuggestionLimit    = 10
	StandoutScoreThreshold    = 85
	MaxTotalScore             = 95
)

// Asynq task queues
const (
	QueueDefault       = "default"
	QueueNotifications = "notifications"
)
