package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/last-man-standing/internal/platform/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var apiTracer = otel.Tracer("last-man-standing/internal/interfaces/httpapi")

// startSpan only traces handler entry points; helpers and middleware get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noop.Span{}
	}
	return tracing.Child(ctx, apiTracer, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
