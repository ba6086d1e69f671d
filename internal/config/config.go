package config

import (
	"os"
	"strconv"

	"bayeslab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sampling SamplingConfig
	Output   OutputConfig
	Server   ServerConfig
	Database DatabaseConfig
	Export   ExportConfig
}

// SamplingConfig holds the sampler run settings shared by all lessons
type SamplingConfig struct {
	Seed       int64
	Iterations int
	Warmup     int
	Chains     int
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir string
}

// ServerConfig holds the report viewer settings
type ServerConfig struct {
	Enabled bool
	Port    string
	GinMode string
}

// DatabaseConfig holds optional run persistence settings
type DatabaseConfig struct {
	URL string // empty disables persistence
}

// ExportConfig holds optional Excel export settings
type ExportConfig struct {
	ExcelFile string // empty disables the workbook export
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Sampling: SamplingConfig{
			Seed:       int64(getEnvIntOrDefault("BAYESLAB_SEED", 42)),
			Iterations: getEnvIntOrDefault("BAYESLAB_ITERATIONS", 5000),
			Warmup:     getEnvIntOrDefault("BAYESLAB_WARMUP", 1000),
			Chains:     getEnvIntOrDefault("BAYESLAB_CHAINS", 2),
		},
		Output: OutputConfig{
			Dir: getEnvOrDefault("BAYESLAB_OUTPUT_DIR", "./out"),
		},
		Server: ServerConfig{
			Enabled: getEnvBoolOrDefault("BAYESLAB_SERVE", false),
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Export: ExportConfig{
			ExcelFile: getEnvOrDefault("BAYESLAB_EXCEL_FILE", ""),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Sampling.Iterations <= 0 {
		return errors.ConfigInvalid("BAYESLAB_ITERATIONS must be positive")
	}
	if cfg.Sampling.Warmup < 0 {
		return errors.ConfigInvalid("BAYESLAB_WARMUP cannot be negative")
	}
	if cfg.Sampling.Chains <= 0 {
		return errors.ConfigInvalid("BAYESLAB_CHAINS must be positive")
	}
	if cfg.Output.Dir == "" {
		return errors.ConfigInvalid("BAYESLAB_OUTPUT_DIR cannot be empty")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
