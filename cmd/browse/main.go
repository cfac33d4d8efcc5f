// browse is a terminal harness for the product browsing engine. It composes
// the full stack (config, cache backend, backend client, pagination engine)
// the same way an embedding application would, then walks a scope page by
// page and prints what the UI layer would render.
//
// Usage:
//
//	browse -kind category -name electronics -pages 3
//	browse -kind featured -refresh
//	browse -kind university -name "State University" -keyword bike
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"market-client/internal/auth"
	"market-client/internal/cache"
	"market-client/internal/common/pagination"
	"market-client/internal/config"
	"market-client/internal/domain/entity"
	"market-client/internal/infra/backend"
	"market-client/internal/infra/db"
	"market-client/internal/infra/kvstore"
	"market-client/internal/observability/logging"
	"market-client/internal/usecase/listing"
)

func main() {
	var (
		kind       = flag.String("kind", "featured", "scope kind: featured, new_arrivals, university, city, category")
		name       = flag.String("name", "", "scope name (university, city, or category scopes)")
		university = flag.String("university", "", "narrow new_arrivals to one campus")
		keyword    = flag.String("keyword", "", "free-text search (disables caching)")
		pages      = flag.Int("pages", 1, "number of pages to load")
		refresh    = flag.Bool("refresh", false, "pull-to-refresh after the initial load")
		configPath = flag.String("config", "", "path to YAML config file")
	)
	flag.Parse()

	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	scope, err := buildScope(*kind, *name, *university)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid scope:", err)
		os.Exit(2)
	}

	cfg, warnings, err := config.LoadClientConfig(*configPath)
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("warning", w))
	}
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	kv, cleanup, err := buildKVStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize cache backend", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	var tokens auth.TokenProvider
	if apiToken := os.Getenv("BACKEND_API_TOKEN"); apiToken != "" {
		tokens = auth.NewStaticTokenProvider(apiToken)
	}

	store := cache.NewStore(kv, cache.Config{
		ListingTTL:   cfg.Cache.ListingTTL,
		ProfileTTL:   cfg.Cache.ProfileTTL,
		WriteTimeout: cache.DefaultConfig().WriteTimeout,
	}, logger)

	fetcher := backend.NewClient(cfg.Backend, tokens, logger)
	engine := listing.NewEngine(fetcher, store, listing.EngineConfig{
		PageSize:              pagination.LoadFromEnv().PageSize,
		ClientFilterThreshold: cfg.Filter.ClientThreshold,
		RefreshEscalation:     cfg.Refresh.EscalationCount,
	}, logger)

	ctx := context.Background()

	if err := engine.LoadInitial(ctx, scope); err != nil {
		logger.Error("initial load failed", slog.Any("error", err))
		os.Exit(1)
	}
	if *keyword != "" {
		if err := engine.SetKeyword(ctx, *keyword); err != nil {
			logger.Error("search failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	for p := 1; p < *pages; p++ {
		if !engine.Snapshot().HasMore {
			break
		}
		if err := engine.LoadMore(ctx); err != nil {
			logger.Warn("load more failed, stopping", slog.Any("error", err))
			break
		}
	}

	if *refresh {
		if err := engine.Refresh(ctx); err != nil {
			logger.Warn("refresh failed", slog.Any("error", err))
		}
	}

	render(engine.Snapshot(), scope)
}

func buildScope(kind, name, university string) (entity.Scope, error) {
	var s entity.Scope
	switch entity.ScopeKind(kind) {
	case entity.ScopeFeatured:
		s = entity.FeaturedScope()
	case entity.ScopeNewArrivals:
		s = entity.NewArrivalsScope(university)
	case entity.ScopeUniversity:
		s = entity.UniversityScope(name)
	case entity.ScopeCity:
		s = entity.CityScope(name)
	case entity.ScopeCategory:
		s = entity.CategoryScope(name)
	default:
		return entity.Scope{}, fmt.Errorf("unknown scope kind %q", kind)
	}
	return s, s.Validate()
}

func render(vm listing.ViewModel, scope entity.Scope) {
	fmt.Printf("scope %s: %d items, hasMore=%v\n", scope.Identifier(), len(vm.VisibleItems), vm.HasMore)
	if vm.TotalCount != nil {
		fmt.Printf("total on backend: %d\n", *vm.TotalCount)
	}
	if vm.Err != nil {
		fmt.Println("error:", vm.Err)
	}
	for _, p := range vm.VisibleItems {
		fmt.Printf("  %-12s  %-40s  %8s  %s\n", p.ID, p.Name, p.Price, p.Condition)
	}
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
