package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Output: entities.OutputConfig{
			Dir:         getEnvOrDefault("DECKMD_OUTPUT_DIR", ""),
			HTML:        getEnvBoolOrDefault("DECKMD_HTML", false),
			FrontMatter: getEnvBoolOrDefault("DECKMD_FRONT_MATTER", false),
		},
		Preview: entities.PreviewConfig{
			Host:     getEnvOrDefault("DECKMD_HOST", "localhost"),
			Port:     getEnvIntOrDefault("DECKMD_PORT", 5273),
			Sanitize: getEnvBoolOrDefault("DECKMD_SANITIZE", true),
		},
		Logging: entities.LoggingConfig{
			Level:      getEnvOrDefault("DECKMD_LOG_LEVEL", "info"),
			Verbose:    getEnvBoolOrDefault("DECKMD_LOG_VERBOSE", false),
			JSONFormat: getEnvBoolOrDefault("DECKMD_LOG_JSON", false),
			File:       getEnvOrDefault("DECKMD_LOG_FILE", ""),
			MaxSize:    getEnvIntOrDefault("DECKMD_LOG_MAX_SIZE", 100),
			MaxAge:     getEnvIntOrDefault("DECKMD_LOG_MAX_AGE", 7),
			MaxBackups: getEnvIntOrDefault("DECKMD_LOG_MAX_BACKUPS", 5),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
