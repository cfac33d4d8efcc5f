// Package config holds the top-level client configuration: backend
// connection settings, pagination behavior, cache backend selection, and
// refresh policy. Values load from an optional YAML file with environment
// variable overrides on top, so deployments can ship a base file and tune
// individual knobs per environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "market-client/internal/pkg/config"
)

// Cache backend identifiers accepted by ClientConfig.Cache.Backend.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendSQL    = "sql"
)

// ClientConfig is the root configuration for the marketplace client data layer.
type ClientConfig struct {
	// Backend configures the HTTP connection to the marketplace API.
	Backend BackendConfig `yaml:"backend"`

	// Cache configures the key-value cache backend and TTLs.
	Cache CacheConfig `yaml:"cache"`

	// Refresh configures pull-to-refresh escalation.
	Refresh RefreshConfig `yaml:"refresh"`

	// Filter configures client-side filtering behavior.
	Filter FilterConfig `yaml:"filter"`
}

// BackendConfig holds marketplace API connection settings.
type BackendConfig struct {
	// BaseURL is the marketplace API origin, e.g. "https://api.example.com".
	// Must be an absolute http(s) URL.
	BaseURL string `yaml:"base_url"`

	// FetchTimeout bounds one page fetch end to end. Default: 10s.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// RateLimitRPS caps outgoing requests per second. Default: 5.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`

	// RateLimitBurst is the token bucket burst size. Default: 5.
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	// Backend is one of "memory", "redis", "sql". Default: "memory".
	Backend string `yaml:"backend"`

	// RedisURL is required when Backend is "redis".
	// Format: "redis://[:password@]host:port/db"
	RedisURL string `yaml:"redis_url"`

	// ListingTTL is how long a cached listing page stays fresh. Default: 5m.
	ListingTTL time.Duration `yaml:"listing_ttl"`

	// ProfileTTL is how long cached seller-profile data stays fresh. Default: 15m.
	ProfileTTL time.Duration `yaml:"profile_ttl"`

	// SweepSchedule is the cron expression for the expired-entry sweeper.
	// Default: "*/5 * * * *".
	SweepSchedule string `yaml:"sweep_schedule"`
}

// RefreshConfig tunes pull-to-refresh behavior.
type RefreshConfig struct {
	// EscalationCount is the number of consecutive refreshes after which
	// the next refresh bypasses the cache entirely. Default: 2.
	EscalationCount int `yaml:"escalation_count"`
}

// FilterConfig tunes filter placement.
type FilterConfig struct {
	// ClientThreshold is the accumulated item count above which filtering
	// is pushed to the server instead of running locally. Default: 500.
	ClientThreshold int `yaml:"client_threshold"`
}

// DefaultClientConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8080",
			FetchTimeout:   10 * time.Second,
			RateLimitRPS:   5,
			RateLimitBurst: 5,
		},
		Cache: CacheConfig{
			Backend:       CacheBackendMemory,
			ListingTTL:    5 * time.Minute,
			ProfileTTL:    15 * time.Minute,
			SweepSchedule: "*/5 * * * *",
		},
		Refresh: RefreshConfig{
			EscalationCount: 2,
		},
		Filter: FilterConfig{
			ClientThreshold: 500,
		},
	}
}

// LoadClientConfig loads configuration in three layers: defaults, then an
// optional YAML file, then environment variable overrides. Invalid
// environment values fall back to the layered value with a warning rather
// than failing startup; a structurally invalid result (bad base URL, unknown
// cache backend) is an error.
//
// The file path comes from the path argument, or CLIENT_CONFIG_FILE when
// path is empty. A missing file is only an error when explicitly requested.
func LoadClientConfig(path string) (*ClientConfig, []string, error) {
	cfg := DefaultClientConfig()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("CLIENT_CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	warnings := cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, warnings, fmt.Errorf("invalid client configuration: %w", err)
	}

	return cfg, warnings, nil
}

// applyEnvOverrides layers environment variables over the current values
// and returns any fallback warnings.
func (c *ClientConfig) applyEnvOverrides() []string {
	var warnings []string

	urlResult := pkgconfig.LoadEnvWithFallback("BACKEND_BASE_URL", c.Backend.BaseURL, pkgconfig.ValidateBaseURL)
	c.Backend.BaseURL = urlResult.Value.(string)
	warnings = append(warnings, urlResult.Warnings...)

	timeoutResult := pkgconfig.LoadEnvDuration("BACKEND_FETCH_TIMEOUT", c.Backend.FetchTimeout, pkgconfig.ValidatePositiveDuration)
	c.Backend.FetchTimeout = timeoutResult.Value.(time.Duration)
	warnings = append(warnings, timeoutResult.Warnings...)

	burstResult := pkgconfig.LoadEnvInt("BACKEND_RATE_LIMIT_BURST", c.Backend.RateLimitBurst, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 100)
	})
	c.Backend.RateLimitBurst = burstResult.Value.(int)
	warnings = append(warnings, burstResult.Warnings...)

	backendResult := pkgconfig.LoadEnvWithFallback("CACHE_BACKEND", c.Cache.Backend, validateCacheBackend)
	c.Cache.Backend = backendResult.Value.(string)
	warnings = append(warnings, backendResult.Warnings...)

	c.Cache.RedisURL = pkgconfig.LoadEnvString("CACHE_REDIS_URL", c.Cache.RedisURL)

	listingResult := pkgconfig.LoadEnvDuration("CACHE_LISTING_TTL", c.Cache.ListingTTL, pkgconfig.ValidatePositiveDuration)
	c.Cache.ListingTTL = listingResult.Value.(time.Duration)
	warnings = append(warnings, listingResult.Warnings...)

	profileResult := pkgconfig.LoadEnvDuration("CACHE_PROFILE_TTL", c.Cache.ProfileTTL, pkgconfig.ValidatePositiveDuration)
	c.Cache.ProfileTTL = profileResult.Value.(time.Duration)
	warnings = append(warnings, profileResult.Warnings...)

	sweepResult := pkgconfig.LoadEnvWithFallback("CACHE_SWEEP_SCHEDULE", c.Cache.SweepSchedule, pkgconfig.ValidateCronSchedule)
	c.Cache.SweepSchedule = sweepResult.Value.(string)
	warnings = append(warnings, sweepResult.Warnings...)

	escalationResult := pkgconfig.LoadEnvInt("REFRESH_ESCALATION_COUNT", c.Refresh.EscalationCount, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 10)
	})
	c.Refresh.EscalationCount = escalationResult.Value.(int)
	warnings = append(warnings, escalationResult.Warnings...)

	thresholdResult := pkgconfig.LoadEnvInt("FILTER_CLIENT_THRESHOLD", c.Filter.ClientThreshold, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 10000)
	})
	c.Filter.ClientThreshold = thresholdResult.Value.(int)
	warnings = append(warnings, thresholdResult.Warnings...)

	return warnings
}

// Validate checks structural correctness of the merged configuration.
func (c *ClientConfig) Validate() error {
	if err := pkgconfig.ValidateBaseURL(c.Backend.BaseURL); err != nil {
		return err
	}

	if c.Backend.FetchTimeout <= 0 {
		return fmt.Errorf("backend fetch timeout must be positive")
	}

	if c.Backend.RateLimitRPS <= 0 {
		return fmt.Errorf("backend rate limit must be positive")
	}

	if c.Backend.RateLimitBurst <= 0 {
		return fmt.Errorf("backend rate limit burst must be positive")
	}

	if err := validateCacheBackend(c.Cache.Backend); err != nil {
		return err
	}

	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache backend 'redis' requires a redis URL")
	}

	if c.Cache.ListingTTL <= 0 || c.Cache.ProfileTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}

	if err := pkgconfig.ValidateCronSchedule(c.Cache.SweepSchedule); err != nil {
		return err
	}

	if c.Refresh.EscalationCount < 1 {
		return fmt.Errorf("refresh escalation count must be at least 1")
	}

	if c.Filter.ClientThreshold < 1 {
		return fmt.Errorf("filter client threshold must be at least 1")
	}

	return nil
}

func validateCacheBackend(backend string) error {
	switch backend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendSQL:
		return nil
	default:
		return fmt.Errorf("unknown cache backend '%s', expected memory, redis, or sql", backend)
	}
}
