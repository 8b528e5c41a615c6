package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration resolved from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" is valid for tests.
	Path       string
	LogQueries bool
}

// Load builds the configuration from environment variables with development
// defaults. Secrets for token signing live in the auth package.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8008"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Path:       getEnv("DB_PATH", "agency-tracker.db"),
			LogQueries: getEnvAsBool("DB_LOG_QUERIES", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
