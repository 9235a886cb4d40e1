package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer       string        // Optional: issuer claim for session tokens (default: postboard)
	SessionTTL   time.Duration // Optional: session token lifetime (default: 1h)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./postboard.db)
	PepperFile   string        // Optional: path to password pepper file (default: ./pepper)

	DeleteTokenSecret         string        // Delete token signing secret; empty disables deletes
	DeleteTokenSecretPrevious string        // Optional: previous secret accepted during rotation
	DeleteTokenMaxAge         time.Duration // Optional: delete token lifetime (default: 5m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:       getEnvOrDefault("POSTBOARD_ISSUER", "postboard"),
		SessionTTL:   getEnvDurationOrDefault("SESSION_TTL", time.Hour),
		DatabaseFile: getEnvOrDefault("POSTBOARD_DATABASE_FILE", "postboard.db"),
		PepperFile:   getEnvOrDefault("POSTBOARD_PEPPER_FILE", "pepper"),

		// AUTH_SECRET is accepted so deployments sharing one secret keep working.
		DeleteTokenSecret:         getEnvOrDefault("DELETE_TOKEN_SECRET", os.Getenv("AUTH_SECRET")),
		DeleteTokenSecretPrevious: os.Getenv("DELETE_TOKEN_SECRET_PREVIOUS"),
		DeleteTokenMaxAge:         getEnvSecondsOrDefault("DELETE_TOKEN_MAX_AGE", 5*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}

	return defaultValue
}

// getEnvSecondsOrDefault accepts a Go duration ("5m") or a bare number of
// seconds ("300").
func getEnvSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return defaultValue
		}
		return time.Duration(seconds) * time.Second
	}

	return getEnvDurationOrDefault(key, defaultValue)
}
