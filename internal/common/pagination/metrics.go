package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesFetchedTotal counts pages fetched from the backend.
	// Labels: scope_kind (featured, new_arrivals, ...), mode (initial, more, refresh)
	PagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_pages_fetched_total",
			Help: "Total number of product pages fetched from the backend",
		},
		[]string{"scope_kind", "mode"},
	)

	// DurationSeconds tracks fetch duration distribution.
	// Labels: mode (initial, more, refresh)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_page_fetch_duration_seconds",
			Help:    "Product page fetch duration distribution",
			Buckets: []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"mode"},
	)

	// ErrorsTotal counts fetch errors by classification.
	// Labels: type (network, server, decode)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_page_fetch_errors_total",
			Help: "Total number of product page fetch errors",
		},
		[]string{"type"},
	)
)

// RecordPageFetched records a successful page fetch.
// mode should be one of: "initial", "more", "refresh".
func RecordPageFetched(scopeKind, mode string) {
	PagesFetchedTotal.WithLabelValues(scopeKind, mode).Inc()
}

// RecordDuration records fetch duration in seconds for the given mode.
func RecordDuration(mode string, seconds float64) {
	DurationSeconds.WithLabelValues(mode).Observe(seconds)
}

// RecordError records a fetch error metric.
// errorType should be one of: "network", "server", "decode".
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}
