// Package config loads service configuration from environment variables.
// main.go calls godotenv first so a local .env works in development.
package config

import (
	"os"
	"strconv"

	"github.com/shoumique/employee-reporter/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Storage  StorageConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// StorageConfig holds upload storage settings
type StorageConfig struct {
	UploadDir      string
	MaxUploadBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	config := &Config{
		Database: DatabaseConfig{URL: url},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Storage: StorageConfig{
			UploadDir:      getEnvOrDefault("UPLOAD_DIR", "uploads"),
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 50*1024*1024),
		},
	}

	if config.Storage.MaxUploadBytes <= 0 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}

	return config, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64OrDefault(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
