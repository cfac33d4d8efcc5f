// The sweeper is a standalone worker that periodically removes expired
// entries from a shared cache backend (Redis or SQL). Deployments using the
// in-process memory backend do not need it: that backend sweeps itself.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"market-client/internal/cache"
	"market-client/internal/config"
	"market-client/internal/infra/db"
	"market-client/internal/infra/kvstore"
	"market-client/internal/observability/logging"
	pkgconfig "market-client/internal/pkg/config"
)

var configMetrics = pkgconfig.NewConfigMetrics("sweeper")

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, warnings, err := config.LoadClientConfig("")
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("warning", w))
		configMetrics.RecordFallback("client")
	}
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	configMetrics.RecordLoadTimestamp()
	configMetrics.SetFallbackActive(len(warnings) > 0)

	kv, cleanup, err := buildKVStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize cache backend", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startMetricsServer(ctx, logger)

	sweeper := cache.NewSweeper(kv, cfg.Cache.SweepSchedule, logger)
	if err := sweeper.Start(ctx); err != nil {
		logger.Error("failed to start sweeper", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("sweeper running",
		slog.String("backend", cfg.Cache.Backend),
		slog.String("schedule", cfg.Cache.SweepSchedule))

	// One immediate sweep so a restart does not wait a full period.
	if _, err := sweeper.Sweep(ctx); err != nil {
		logger.Warn("startup sweep failed", slog.Any("error", err))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutdown signal received")
	sweeper.Stop()
	cancel()
}

// buildKVStore constructs the configured cache backend and its cleanup.
func buildKVStore(cfg *config.ClientConfig, logger *slog.Logger) (kvstore.Store, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := kvstore.NewRedisStore(cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close redis connection", slog.Any("error", err))
			}
		}, nil

	case config.CacheBackendSQL:
		database, err := db.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.MigrateUp(database); err != nil {
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return kvstore.NewSQLStore(database), func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}, nil

	default:
		return kvstore.NewMemoryStore(), func() {}, nil
	}
}
