package config

import (
	"os"
	"strconv"
	"time"

	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Warehouse WarehouseConfig
	Server    ServerConfig
	Ops       OpsConfig
}

// WarehouseConfig holds warehouse connection settings. An empty URL
// switches the dashboard into demo mode on synthetic fixtures.
type WarehouseConfig struct {
	URL                  string
	MaxConcurrentQueries int64
	QueryTimeout         time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// OpsConfig holds the ops router settings (health, pprof)
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Warehouse: WarehouseConfig{
			URL:                  os.Getenv("DATABASE_URL"),
			MaxConcurrentQueries: int64(getEnvIntOrDefault("WAREHOUSE_MAX_QUERIES", 8)),
			QueryTimeout:         getEnvDurationOrDefault("WAREHOUSE_QUERY_TIMEOUT", 30*time.Second),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
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
	if config.Warehouse.MaxConcurrentQueries < 1 {
		return errors.ConfigInvalid("WAREHOUSE_MAX_QUERIES must be at least 1")
	}
	if config.Warehouse.QueryTimeout <= 0 {
		return errors.ConfigInvalid("WAREHOUSE_QUERY_TIMEOUT must be positive")
	}
	if config.Ops.Enabled && config.Ops.Port == config.Server.Port {
		return errors.ConfigInvalid("ops port must differ from server port")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
