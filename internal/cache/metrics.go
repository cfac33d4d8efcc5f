package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HitsTotal counts cache reads served without hitting the network.
	HitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_hits_total",
			Help: "Total number of product cache hits",
		},
	)

	// MissesTotal counts cache misses by reason.
	// Labels: reason (absent, expired, decode, error, bypassed)
	MissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_cache_misses_total",
			Help: "Total number of product cache misses",
		},
		[]string{"reason"},
	)

	// WriteFailuresTotal counts swallowed cache write failures.
	WriteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_write_failures_total",
			Help: "Total number of swallowed product cache write failures",
		},
	)

	// SweepDuration tracks how long a sweeper pass takes.
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "product_cache_sweep_duration_seconds",
			Help:    "Cache sweep duration distribution",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	// SweptEntriesTotal counts entries removed by the sweeper.
	SweptEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_swept_entries_total",
			Help: "Total number of expired cache entries removed by the sweeper",
		},
	)
)

// RecordHit records a cache hit.
func RecordHit() {
	HitsTotal.Inc()
}

// RecordMiss records a cache miss.
// reason should be one of: "absent", "expired", "decode", "error", "bypassed".
func RecordMiss(reason string) {
	MissesTotal.WithLabelValues(reason).Inc()
}

// RecordWriteFailure records a swallowed cache write failure.
func RecordWriteFailure() {
	WriteFailuresTotal.Inc()
}

// RecordSweep records the outcome of one sweeper pass.
func RecordSweep(seconds float64, removed int) {
	SweepDuration.Observe(seconds)
	SweptEntriesTotal.Add(float64(removed))
}
