// Package tracing starts child spans only when the caller already carries a
// sampled parent, so background work and filtered routes stay span-free.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var noopSpan trace.Span = noop.Span{}

// Child starts name under the span in ctx. Without a valid parent it returns ctx
// unchanged and a no-op span.
func Child(ctx context.Context, tracer trace.Tracer, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return tracer.Start(ctx, name, opts...)
}
