package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"market-client/internal/infra/kvstore"
)

// DefaultSweepSchedule runs the sweeper every five minutes, matching the
// shortest TTL class so expired listings never linger more than one period.
const DefaultSweepSchedule = "*/5 * * * *"

// Sweeper periodically removes expired entries from the cache backend.
// Logical expiry already hides stale entries from readers; the sweeper just
// keeps the backend from accumulating dead rows.
type Sweeper struct {
	kv       kvstore.Store
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron
}

// NewSweeper creates a sweeper with the given cron schedule
// (standard 5-field cron syntax).
func NewSweeper(kv kvstore.Store, schedule string, logger *slog.Logger) *Sweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{kv: kv, schedule: schedule, logger: logger}
}

// Start schedules recurring sweeps. It returns an error if the schedule
// cannot be parsed; sweep failures themselves are logged and retried on the
// next tick.
func (s *Sweeper) Start(ctx context.Context) error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("cache sweep failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("cache sweeper started", slog.String("schedule", s.schedule))
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("cache sweeper stopped")
}

// Sweep removes expired entries once and records metrics.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	start := time.Now()

	removed, err := s.kv.DeleteExpired(ctx)
	if err != nil {
		return removed, fmt.Errorf("delete expired cache entries: %w", err)
	}

	RecordSweep(time.Since(start).Seconds(), removed)
	s.logger.Info("cache sweep completed",
		slog.Int("removed", removed),
		slog.Duration("duration", time.Since(start)))
	return removed, nil
}
