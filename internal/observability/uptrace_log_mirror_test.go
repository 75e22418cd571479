package observability

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"path", "/v1/seasons/2024%2F25/standings"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipUptraceLog("auto picks assigned", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"season_id", "2024/25", "week", 7, "user_id"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "season_id" || attrs[0].Value.AsString() != "2024/25" {
		t.Fatalf("unexpected season_id attribute")
	}
	if attrs[1].Key != "week" || attrs[1].Value.AsInt64() != 7 {
		t.Fatalf("unexpected week attribute")
	}
	if attrs[2].Key != "user_id" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected user_id attribute")
	}
}

func TestToOTelLogValue_CompositeAsJSON(t *testing.T) {
	v := toOTelLogValue(map[string]any{"points": 3, "scored": true})
	if v.Kind() != otellog.KindString || v.AsString() != `{"points":3,"scored":true}` {
		t.Fatalf("unexpected map value: %s %q", v.Kind(), v.AsString())
	}
}

func TestToOTelSeverity(t *testing.T) {
	cases := map[logging.Level]otellog.Severity{
		logging.LevelDebug: otellog.SeverityDebug,
		logging.LevelInfo:  otellog.SeverityInfo,
		logging.LevelWarn:  otellog.SeverityWarn,
		logging.LevelError: otellog.SeverityError,
	}
	for level, want := range cases {
		if got := toOTelSeverity(level); got != want {
			t.Fatalf("toOTelSeverity(%s) = %v, want %v", level, got, want)
		}
	}
}

func TestBuildOTelRecord(t *testing.T) {
	now := time.Date(2024, 8, 16, 11, 0, 0, 0, time.UTC)
	record := buildOTelRecord(now, logging.LevelWarn, "auto pick skipped", []any{"user_id", "u-1", "error", errors.New("no legal team")})

	if record.Severity() != otellog.SeverityWarn || record.SeverityText() != "WARN" {
		t.Fatalf("unexpected severity: %v %s", record.Severity(), record.SeverityText())
	}
	if record.Body().AsString() != "auto pick skipped" || !record.Timestamp().Equal(now) {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.AttributesLen() != 2 {
		t.Fatalf("expected 2 attributes, got %d", record.AttributesLen())
	}
}

func TestToOTelLogValue_Scalars(t *testing.T) {
	if v := toOTelLogValue(uint64(math.MaxUint64)); v.Kind() != otellog.KindString {
		t.Fatalf("expected overflowing uint64 as string, got %s", v.Kind())
	}
	if v := toOTelLogValue(90 * time.Minute); v.AsString() != "1h30m0s" {
		t.Fatalf("unexpected duration value: %q", v.AsString())
	}
	if v := toOTelLogValue([]string{"ars", "che"}); v.Kind() != otellog.KindSlice || len(v.AsSlice()) != 2 {
		t.Fatalf("unexpected slice value: %v", v)
	}
	var missing *int
	if v := toOTelLogValue(missing); v.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer, got %s", v.Kind())
	}
	week := 7
	if v := toOTelLogValue(&week); v.AsString() != "7" {
		t.Fatalf("unexpected pointer value: %v", v)
	}
}
