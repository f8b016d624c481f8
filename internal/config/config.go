package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // "sqlite" (default), "postgres" or "mysql"
	DatabasePath    string // sqlite file path
	DatabaseURL     string // postgres/mysql connection string
	MigrationsPath  string
	SessionDuration time.Duration
	SessionSecret   string // HMAC key for session tokens
	GroupName       string // bootstrap group name for first run
	GroupPasscode   string // bootstrap passcode for first run
	SESRegion       string
	SESFromEmail    string
	SESFromName     string
	NotifyDebug     bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./carpool.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: getEnvDuration("SESSION_DURATION", 30*24*time.Hour),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		GroupName:       getEnv("GROUP_NAME", ""),
		GroupPasscode:   getEnv("GROUP_PASSCODE", ""),
		SESRegion:       getEnv("SES_REGION", "us-east-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", "Carpool Ledger"),
		NotifyDebug:     getEnvBool("NOTIFY_DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable (e.g. "720h") or returns a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable or returns a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
