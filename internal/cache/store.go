package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"market-client/internal/common/pagination"
	"market-client/internal/domain/entity"
	"market-client/internal/infra/kvstore"
)

// Entry is one cached page-0 result together with its pagination metadata.
type Entry struct {
	Items      []entity.Product  `json:"items"`
	NextCursor pagination.Cursor `json:"nextCursor"`
	HasMore    bool              `json:"hasMore"`
	TotalCount *int              `json:"totalCount,omitempty"`
	StoredAt   time.Time         `json:"storedAt"`
}

// Config holds cache TTLs and the write deadline.
type Config struct {
	// ListingTTL applies to category/university/city/featured/new-arrivals caches.
	ListingTTL time.Duration

	// ProfileTTL applies to profile-namespace caches, which change rarely.
	ProfileTTL time.Duration

	// WriteTimeout bounds how long a Set may block its caller.
	WriteTimeout time.Duration
}

// DefaultConfig returns the default cache configuration:
// 5 minute listing TTL, 15 minute profile TTL, 2 second write deadline.
func DefaultConfig() Config {
	return Config{
		ListingTTL:   5 * time.Minute,
		ProfileTTL:   15 * time.Minute,
		WriteTimeout: 2 * time.Second,
	}
}

// LoadConfigFromEnv loads cache configuration from environment variables
// (CACHE_LISTING_TTL, CACHE_PROFILE_TTL, CACHE_WRITE_TIMEOUT as Go
// durations), falling back to defaults when unset or invalid.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ListingTTL = getEnvAsDuration("CACHE_LISTING_TTL", cfg.ListingTTL)
	cfg.ProfileTTL = getEnvAsDuration("CACHE_PROFILE_TTL", cfg.ProfileTTL)
	cfg.WriteTimeout = getEnvAsDuration("CACHE_WRITE_TIMEOUT", cfg.WriteTimeout)
	return cfg
}

// Store wraps a key-value backend with TTL bookkeeping and the degrade-to-miss
// error policy. All methods are safe for concurrent use if the backend is.
type Store struct {
	kv     kvstore.Store
	cfg    Config
	logger *slog.Logger

	// now is swapped in tests to control TTL expiry.
	now func() time.Time
}

// NewStore creates a cache store over the given backend.
func NewStore(kv kvstore.Store, cfg Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, cfg: cfg, logger: logger, now: time.Now}
}

// Get returns the cached entry for the key, or (nil, false) on any kind of
// miss: absent key, expired entry, undecodable payload, or backend error.
// Expired entries are invalidated in place so the next read is a clean miss.
func (s *Store) Get(ctx context.Context, key string) (*Entry, bool) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			s.logger.Warn("cache read failed", slog.String("key", key), slog.Any("error", err))
			RecordMiss("error")
			return nil, false
		}
		RecordMiss("absent")
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.logger.Warn("cache entry undecodable, invalidating", slog.String("key", key), slog.Any("error", err))
		_ = s.kv.Delete(ctx, key)
		RecordMiss("decode")
		return nil, false
	}

	if s.now().Sub(entry.StoredAt) > s.ttlFor(key) {
		_ = s.kv.Delete(ctx, key)
		RecordMiss("expired")
		return nil, false
	}

	RecordHit()
	return &entry, true
}

// Set stores the entry under the key, stamping StoredAt. The write is bounded
// by the configured write timeout; failures are logged and swallowed. The
// return value reports whether the write completed, which callers use to
// reset refresh-escalation state, never to fail an operation.
func (s *Store) Set(ctx context.Context, key string, entry Entry) bool {
	entry.StoredAt = s.now()

	raw, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("cache entry marshal failed", slog.String("key", key), slog.Any("error", err))
		RecordWriteFailure()
		return false
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	// The backend-side TTL is a durability bound only; logical expiry is the
	// StoredAt check in Get. Twice the TTL leaves expired entries readable
	// long enough for the sweeper to count them.
	if err := s.kv.Set(writeCtx, key, string(raw), 2*s.ttlFor(key)); err != nil {
		s.logger.Warn("cache write failed", slog.String("key", key), slog.Any("error", err))
		RecordWriteFailure()
		return false
	}
	return true
}

// Invalidate removes one entry. Failures are logged and swallowed.
func (s *Store) Invalidate(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Warn("cache invalidate failed", slog.String("key", key), slog.Any("error", err))
	}
}

// InvalidateAll removes every entry in the given namespace.
func (s *Store) InvalidateAll(ctx context.Context, namespace string) {
	if _, err := s.kv.DeleteByPrefix(ctx, namespace+":"); err != nil {
		s.logger.Warn("cache namespace invalidate failed",
			slog.String("namespace", namespace), slog.Any("error", err))
	}
}

// ttlFor selects the TTL class from the key's namespace prefix.
func (s *Store) ttlFor(key string) time.Duration {
	if strings.HasPrefix(key, NamespaceProfile+":") {
		return s.cfg.ProfileTTL
	}
	return s.cfg.ListingTTL
}

// getEnvAsDuration retrieves an environment variable and parses it as a
// Go duration. Returns the default value if unset, unparseable, or negative.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}
