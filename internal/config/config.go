package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the complete runner configuration
type Config struct {
	Run     RunConfig
	Sampler SamplerConfig
	Log     LogConfig
}

// RunConfig holds the integration call settings
type RunConfig struct {
	Samples int   // total sample budget across all workers
	Workers int   // 0 means one worker per available execution unit
	Seed    int64 // 0 means time-derived seeds
	P       float64
	Q       float64
}

// SamplerConfig holds the adaptive grid settings
type SamplerConfig struct {
	Bins       int
	Iterations int
	Alpha      float64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Run: RunConfig{
			Samples: getEnvIntOrDefault("GOVEGAS_SAMPLES", 10_000_000),
			Workers: getEnvIntOrDefault("GOVEGAS_WORKERS", 0),
			Seed:    getEnvInt64OrDefault("GOVEGAS_SEED", 0),
			P:       getEnvFloatOrDefault("GOVEGAS_P", 0.1),
			Q:       getEnvFloatOrDefault("GOVEGAS_Q", 0.1),
		},
		Sampler: SamplerConfig{
			Bins:       getEnvIntOrDefault("GOVEGAS_BINS", 0),
			Iterations: getEnvIntOrDefault("GOVEGAS_ITERATIONS", 0),
			Alpha:      getEnvFloatOrDefault("GOVEGAS_ALPHA", 0),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("GOVEGAS_LOG_LEVEL", "info"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Run.Samples < 1 {
		return fmt.Errorf("GOVEGAS_SAMPLES must be at least 1, got %d", config.Run.Samples)
	}
	if config.Run.Workers < 0 {
		return fmt.Errorf("GOVEGAS_WORKERS must not be negative, got %d", config.Run.Workers)
	}
	if config.Sampler.Bins < 0 || config.Sampler.Iterations < 0 || config.Sampler.Alpha < 0 {
		return fmt.Errorf("sampler settings must not be negative")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
