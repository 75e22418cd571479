package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core))

	logger.Info("pick created", "season_id", "2024/25", "week", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "pick created", entries[0].Message)
	assert.Equal(t, "2024/25", entries[0].ContextMap()["season_id"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["week"])
}

func TestLogger_MirrorReceivesEnabledRecords(t *testing.T) {
	core, _ := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("below threshold")
	logger.WarnContext(context.Background(), "auto pick skipped", "user_id", "u1")
	logger.Error("elimination failed")

	assert.Equal(t, []string{"warn:auto pick skipped", "error:elimination failed"}, got)

	SetMirror(nil)
	logger.Info("not mirrored")
	assert.Len(t, got, 2)
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("nil logger")
		logger.ErrorContext(context.Background(), "nil logger ctx")
	})
	assert.NotNil(t, logger.With("k", "v"))
}

func TestNew_WritesJSONWithTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.Debug("dropped")
	logger.InfoContext(ctx, "standings computed", "season_id", "2024/25", "err", errors.New("boom"), "dangling")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "standings computed", line["msg"])
	assert.Equal(t, "2024/25", line["season_id"])
	assert.Equal(t, "boom", line["err"])
	assert.Contains(t, line, "dangling")
	assert.Equal(t, traceID.String(), line["trace_id"])
	assert.Equal(t, spanID.String(), line["span_id"])
	assert.Contains(t, line["caller"], "logger_test.go")
}
