// Package tracing provides OpenTelemetry tracing integration.
// The fetch adapter opens one span per backend request; scope identifier,
// pagination mode, and response classification land on the span as attributes.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the marketplace client.
var tracer = otel.Tracer("market-client")

// GetTracer returns the global tracer for creating spans.
// This tracer can be used throughout the application to create new spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// StartFetchSpan opens a client span for one backend product fetch.
// The caller must end the returned span.
func StartFetchSpan(ctx context.Context, scopeID, mode string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "product.fetch_page",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("product.scope", scopeID),
			attribute.String("product.fetch_mode", mode),
		),
	)
}
