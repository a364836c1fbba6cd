package config

import (
	"fmt"

	"hangout-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env (if present) and binds environment variables through viper.
func Load() error {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 7070)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")

	return nil
}

// Get returns the value for a key, empty string when unset.
func Get(key string) string {
	return viper.GetString(key)
}

// GetSafe returns the value for a key and errors when it is unset.
func GetSafe(key string) (string, error) {
	if !viper.IsSet(key) || viper.GetString(key) == "" {
		return "", fmt.Errorf("missing required config key: %s", key)
	}
	return viper.GetString(key), nil
}

func GetInt(key string) int {
	return viper.GetInt(key)
}
