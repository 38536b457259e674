package config

import (
	"os"
	"strconv"
	"strings"

	"flightdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Portfolio PortfolioConfig
	Analysis  AnalysisConfig
	Ops       OpsConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the location of the bundled flight dataset
type DataConfig struct {
	File string
}

// PortfolioConfig holds the biographical content source
type PortfolioConfig struct {
	ProfileFile string
}

// AnalysisConfig holds statistical defaults
type AnalysisConfig struct {
	DefaultConfidence float64
}

// OpsConfig holds the health/profiling listener settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Portfolio: *loadPortfolioConfig(),
		Analysis:  *loadAnalysisConfig(),
		Ops:       *loadOpsConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File: getEnvOrDefault("DATA_FILE", "data/airlines_flights_data.csv"),
	}
}

func loadPortfolioConfig() *PortfolioConfig {
	return &PortfolioConfig{
		ProfileFile: getEnvOrDefault("PROFILE_FILE", ""),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		DefaultConfidence: getEnvFloatOrDefault("DEFAULT_CONFIDENCE", 0.95),
	}
}

func loadOpsConfig() *OpsConfig {
	return &OpsConfig{
		Port:    getEnvOrDefault("OPS_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("OPS_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Data.File) == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if c := config.Analysis.DefaultConfidence; c < 0.90 || c > 0.99 {
		return errors.ConfigInvalid("DEFAULT_CONFIDENCE must be between 0.90 and 0.99")
	}
	if config.Ops.Enabled && config.Ops.Port == config.Server.Port {
		return errors.ConfigInvalid("OPS_PORT must differ from PORT")
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
