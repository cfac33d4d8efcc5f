package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	PageSize    int // Items requested per page (typically 20)
	MaxPageSize int // Maximum allowed items per page (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: size=20, max=100
func DefaultConfig() Config {
	return Config{
		PageSize:    20,
		MaxPageSize: 100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_PAGE_SIZE: Items requested per page
//   - PAGINATION_MAX_PAGE_SIZE: Maximum items per page
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	cfg := Config{
		PageSize:    getEnvAsInt("PAGINATION_PAGE_SIZE", 20),
		MaxPageSize: getEnvAsInt("PAGINATION_MAX_PAGE_SIZE", 100),
	}
	if cfg.PageSize < 1 || cfg.PageSize > cfg.MaxPageSize {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return cfg
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
