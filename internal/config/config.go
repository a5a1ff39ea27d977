package config

import (
	"os"
	"strconv"
	"strings"

	"trialstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Pipeline PipelineConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	MaxUploadBytes int64
	PreviewLines   int
}

// PipelineConfig holds data processing settings
type PipelineConfig struct {
	TreatmentColumn  string
	ParameterColumns []string
	ExcludedSuffix   string
	LegendSheet      string
	Workers          int
}

// DatabaseConfig holds the optional result-archive connection settings.
// The archive is disabled when URL is empty.
type DatabaseConfig struct {
	URL string
}

// DefaultParameterColumns are the measurement columns searched for on each
// trial sheet when PARAMETER_COLUMNS is not set.
var DefaultParameterColumns = []string{
	"Yield", "Height", "Vigor", "Moisture", "TestWeight",
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 16<<20),
			PreviewLines:   getEnvIntOrDefault("PREVIEW_LINES", 30),
		},
		Pipeline: PipelineConfig{
			TreatmentColumn:  getEnvOrDefault("TREATMENT_COLUMN", "Treatment"),
			ParameterColumns: getEnvListOrDefault("PARAMETER_COLUMNS", DefaultParameterColumns),
			ExcludedSuffix:   getEnvOrDefault("EXCLUDED_SHEET_SUFFIX", "_raw"),
			LegendSheet:      getEnvOrDefault("LEGEND_SHEET", "Legend"),
			Workers:          getEnvIntOrDefault("PIPELINE_WORKERS", 4),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.PreviewLines < 1 {
		return errors.ConfigInvalid("preview line count must be positive")
	}
	if config.Pipeline.TreatmentColumn == "" {
		return errors.ConfigInvalid("treatment column name is required")
	}
	if len(config.Pipeline.ParameterColumns) == 0 {
		return errors.ConfigInvalid("at least one parameter column is required")
	}
	if config.Pipeline.Workers < 1 {
		return errors.ConfigInvalid("pipeline worker count must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
