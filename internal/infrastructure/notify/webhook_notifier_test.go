package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	"github.com/riskibarqy/last-man-standing/internal/platform/resilience"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
)

func testAssignment() usecase.AutoPickAssignment {
	return usecase.AutoPickAssignment{
		UserID:         "u-1",
		SeasonID:       "2024/25",
		GameweekNumber: 4,
		TeamID:         "ars",
		PickID:         "pick-9",
	}
}

func TestWebhookNotifier_PostsAssignment(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hook-secret" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "pick-9" {
			t.Errorf("unexpected idempotency key: %s", got)
		}

		var body map[string]any
		if err := jsoniter.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body["event"] != eventAutoPickAssigned || body["team_id"] != "ars" || body["gameweek_number"] != float64(4) {
			t.Errorf("unexpected body: %+v", body)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(WebhookNotifierConfig{
		URL:            srv.URL + "/hooks/autopick",
		Token:          "hook-secret",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	if err := notifier.NotifyAutoPick(context.Background(), testAssignment()); err != nil {
		t.Fatalf("notify: %v", err)
	}
}

func TestWebhookNotifier_RejectsInvalidURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://example.com/hook", "http://"} {
		notifier := NewWebhookNotifier(WebhookNotifierConfig{URL: raw}, logging.NewNop())
		if err := notifier.NotifyAutoPick(context.Background(), testAssignment()); err == nil {
			t.Fatalf("expected error for url %q", raw)
		}
	}
}

func TestWebhookNotifier_ClientErrorDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(WebhookNotifierConfig{
		URL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		err := notifier.NotifyAutoPick(context.Background(), testAssignment())
		if err == nil || !strings.Contains(err.Error(), "status=400") {
			t.Fatalf("expected status error, got %v", err)
		}
	}
	if calls.Load() != 3 {
		t.Fatalf("expected every request to reach the server, got %d", calls.Load())
	}
}

func TestWebhookNotifier_ServerErrorsOpenBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(WebhookNotifierConfig{
		URL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if err := notifier.NotifyAutoPick(context.Background(), testAssignment()); !errors.Is(err, errWebhookTransient) {
			t.Fatalf("expected transient error, got %v", err)
		}
	}

	err := notifier.NotifyAutoPick(context.Background(), testAssignment())
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected open circuit to short-circuit requests, got %d calls", calls.Load())
	}
}

func TestBuildCurlPreview_MasksToken(t *testing.T) {
	t.Parallel()

	preview := buildCurlPreview("https://hooks.example.com/a", "pick-1", `{"k":"it's"}`, true)
	if strings.Contains(preview, "secret") {
		t.Fatalf("preview leaked token: %s", preview)
	}
	if !strings.Contains(preview, "'Authorization: Bearer ***'") {
		t.Fatalf("expected masked authorization header: %s", preview)
	}
	if !strings.Contains(preview, `'{"k":"it'"'"'s"}'`) {
		t.Fatalf("expected shell quoted body: %s", preview)
	}
}
