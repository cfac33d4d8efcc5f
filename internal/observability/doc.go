// Package observability provides the observability infrastructure for the
// client data layer: structured logging, Prometheus metrics, and
// OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - tracing: OpenTelemetry tracing integration
//
// Prometheus recorders live next to the code they instrument (cache,
// pagination) rather than in a central registry, matching how each concern
// owns its metric names.
//
// Example usage:
//
//	import "market-client/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("client started")
//	}
package observability
