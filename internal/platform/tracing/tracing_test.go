package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestChild_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := Child(ctx, noop.NewTracerProvider().Tracer("test"), "usecase.PickService.SubmitPick")
	defer span.End()

	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())
}

func TestChild_WithParentStartsSpan(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, span := Child(ctx, noop.NewTracerProvider().Tracer("test"), "usecase.ScoringService.ApplyFixtureResult")
	defer span.End()

	assert.NotEqual(t, ctx, got)
	assert.Equal(t, parent.TraceID(), trace.SpanContextFromContext(got).TraceID())
}

func TestChild_EmptyNameIsNoop(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{TraceID: trace.TraceID{1}, SpanID: trace.SpanID{2}})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, _ := Child(ctx, noop.NewTracerProvider().Tracer("test"), "")
	assert.Equal(t, ctx, got)
}
