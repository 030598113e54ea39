package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "webscout"

// StartDispatchSpan starts a span for one tool dispatch.
func StartDispatchSpan(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "dispatch",
		trace.WithAttributes(
			attribute.String("dispatch.operation", op),
			attribute.String("dispatch.cache_key", key),
		),
	)
}

// StartResourceSpan starts a span for one resource read.
func StartResourceSpan(ctx context.Context, uri string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "resource.read",
		trace.WithAttributes(
			attribute.String("resource.uri", uri),
		),
	)
}
