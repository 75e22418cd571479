package notify

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	"github.com/riskibarqy/last-man-standing/internal/platform/resilience"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const eventAutoPickAssigned = "pick.auto_assigned"

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookNotifierConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookNotifier posts auto-pick assignments to an external endpoint.
type WebhookNotifier struct {
	client  *http.Client
	url     string
	token   string
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

type autoPickEvent struct {
	Event          string    `json:"event"`
	PickID         string    `json:"pick_id"`
	UserID         string    `json:"user_id"`
	SeasonID       string    `json:"season_id"`
	GameweekNumber int       `json:"gameweek_number"`
	TeamID         string    `json:"team_id"`
	SentAt         time.Time `json:"sent_at"`
}

func NewWebhookNotifier(cfg WebhookNotifierConfig, logger *logging.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("auto pick webhook circuit state changed", "from", from, "to", to)
	})

	return &WebhookNotifier{
		client:  &http.Client{Timeout: timeout},
		url:     strings.TrimSpace(cfg.URL),
		token:   strings.TrimSpace(cfg.Token),
		logger:  logger,
		breaker: breaker,
	}
}

func (n *WebhookNotifier) NotifyAutoPick(ctx context.Context, assignment usecase.AutoPickAssignment) error {
	targetURL, err := validateHTTPURL(n.url)
	if err != nil {
		return crerr.Wrap(err, "invalid AUTOPICK_WEBHOOK_URL")
	}

	body, err := sonic.Marshal(autoPickEvent{
		Event:          eventAutoPickAssigned,
		PickID:         assignment.PickID,
		UserID:         assignment.UserID,
		SeasonID:       assignment.SeasonID,
		GameweekNumber: assignment.GameweekNumber,
		TeamID:         assignment.TeamID,
		SentAt:         time.Now().UTC(),
	})
	if err != nil {
		return crerr.Wrap(err, "marshal auto pick event")
	}

	bodyText := truncateForLog(string(body), 4096)
	curlPreview := buildCurlPreview(targetURL, assignment.PickID, bodyText, n.token != "")
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", targetURL),
			attribute.String("webhook.event", eventAutoPickAssigned),
			attribute.String("webhook.request_body", bodyText),
			attribute.String("webhook.request_curl_preview", curlPreview),
		)
	}
	n.logger.DebugContext(ctx, "auto pick webhook request", "url", targetURL, "curl_preview", curlPreview)

	err = n.breaker.Execute(ctx, func(ctx context.Context) error {
		return n.post(ctx, targetURL, assignment.PickID, body)
	}, isTransient)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		n.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", n.breaker.State())
		return fmt.Errorf("auto pick webhook is temporarily unavailable: %w", err)
	}
	if err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "auto pick webhook delivered",
		"user_id", assignment.UserID,
		"season_id", assignment.SeasonID,
		"gameweek", assignment.GameweekNumber,
		"pick_id", assignment.PickID,
	)
	return nil
}

func (n *WebhookNotifier) post(ctx context.Context, targetURL, idempotencyKey string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post auto pick webhook url=%s: %v", errWebhookTransient, targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := fmt.Sprintf("post auto pick webhook status=%d url=%s body=%s", resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
	if isRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: %s", errWebhookTransient, detail)
	}
	return stderrors.New(detail)
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func buildCurlPreview(targetURL, idempotencyKey, body string, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	appendFlagHeader := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(targetURL))
	appendFlagHeader("Content-Type: application/json")
	appendFlagHeader("Idempotency-Key: " + idempotencyKey)
	if withToken {
		appendFlagHeader("Authorization: Bearer ***")
	}
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isTransient(err error) bool {
	return stderrors.Is(err, errWebhookTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
