package config

import (
	"os"
	"strconv"
	"strings"

	"lifestat/internal"
	"lifestat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Paths    PathConfig
	Plot     PlotConfig
	Analysis AnalysisConfig
	LogLevel internal.LogLevel
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port           string
	MetricsEnabled bool
}

// PathConfig holds file system paths
type PathConfig struct {
	InputDir  string
	OutputDir string
}

// PlotConfig holds chart rendering settings
type PlotConfig struct {
	Format   string
	WidthIn  float64
	HeightIn float64
}

// AnalysisConfig holds numerical settings that are not part of a method's
// positional input.
type AnalysisConfig struct {
	NelderMeadTolerance float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	level, ok := internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if !ok {
		return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			MetricsEnabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
		},
		Paths: PathConfig{
			InputDir:  getEnvOrDefault("INP_DIR", "Inp"),
			OutputDir: getEnvOrDefault("OUTPUT_DIR", "."),
		},
		Plot: PlotConfig{
			Format:   strings.ToLower(getEnvOrDefault("PLOT_FORMAT", "png")),
			WidthIn:  getEnvFloatOrDefault("PLOT_WIDTH_IN", 6),
			HeightIn: getEnvFloatOrDefault("PLOT_HEIGHT_IN", 4),
		},
		Analysis: AnalysisConfig{
			NelderMeadTolerance: getEnvFloatOrDefault("NELDER_MEAD_TOLERANCE", 1e-8),
		},
		LogLevel: level,
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	switch config.Plot.Format {
	case "png", "svg":
	default:
		return errors.ConfigInvalid("PLOT_FORMAT must be png or svg")
	}
	if config.Plot.WidthIn <= 0 || config.Plot.HeightIn <= 0 {
		return errors.ConfigInvalid("plot dimensions must be positive")
	}
	if config.Analysis.NelderMeadTolerance <= 0 {
		return errors.ConfigInvalid("NELDER_MEAD_TOLERANCE must be positive")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
