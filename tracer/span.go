package tracer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Span trace.Span

// Attribute is an alias for OpenTelemetry attribute.KeyValue.
type Attribute = attribute.KeyValue

// SpanFromContext returns the span attached to the given context.
// If the context does not have a span attached to it, a no-op span will be returned.
// Example:
//
//	ctx := context.Background()
//	span := tracer.SpanFromContext(ctx)
//	defer span.End()
func SpanFromContext(ctx context.Context) Span {
	return trace.SpanFromContext(ctx)
}

// ContextWithSpan returns a copy of ctx with span set as the active span.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	return trace.ContextWithSpan(ctx, span)
}

// NewSpanFromContext creates a new span from the given context.
// If the context already has a span attached to it, the new span will be a child of the existing span.
// If the context does not have a span attached to it, the tracer comes from the
// no-op span's provider, so the new span is a non-recording span with an invalid
// span context.
// The tracer name is used to identify the tracer to be used to create the span.
// If the tracer name is not provided, the default 'triton-tracing' tracer name will be used.
// Example:
//
//	ctx := context.Background()
//	ctx, span := tracer.NewSpanFromContext(ctx, "my-tracer", "my-span")
//	defer span.End()
func NewSpanFromContext(ctx context.Context, tracerName, spanName string) (context.Context, Span) {
	if tracerName == "" {
		tracerName = "triton-tracing"
	}

	return SpanFromContext(ctx).TracerProvider().Tracer(tracerName).Start(ctx, spanName)
}

// NewSpanFromContextAt behaves like NewSpanFromContext but starts the
// span with an explicit start time instead of the time of the call, for
// callers translating an external clock (e.g. a host-supplied monotonic
// timestamp) into the span's timeline. Extra start options (span kind,
// attributes, links, …) may be supplied as opts.
func NewSpanFromContextAt(ctx context.Context, tracerName, spanName string, at time.Time, opts ...trace.SpanStartOption) (context.Context, Span) {
	if tracerName == "" {
		tracerName = "triton-tracing"
	}

	opts = append(opts, trace.WithTimestamp(at))
	return SpanFromContext(ctx).TracerProvider().Tracer(tracerName).Start(ctx, spanName, opts...)
}
