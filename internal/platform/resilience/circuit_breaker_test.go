package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(threshold, probes int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   probes,
	})
	now := time.Date(2024, 8, 16, 11, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	b, now := newTestBreaker(2, 1)
	var seen []string
	b.OnStateChange(func(from, to CircuitState) { seen = append(seen, string(from)+">"+string(to)) })

	require.NoError(t, b.Allow())
	b.RecordFailure()
	assert.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	*now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	assert.Equal(t, CircuitStateHalfOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen, "only one probe admitted")

	b.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, b.State())
	assert.Equal(t, []string{"closed>open", "open>half_open", "half_open>closed"}, seen)
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now := newTestBreaker(1, 1)
	b.RecordFailure()
	*now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestCircuitBreaker_ExecuteClassifiesErrors(t *testing.T) {
	b, _ := newTestBreaker(1, 1)
	ctx := context.Background()
	permanent := errors.New("bad request")
	transient := errors.New("upstream 503")
	isTransient := func(err error) bool { return errors.Is(err, transient) }

	err := b.Execute(ctx, func(context.Context) error { return permanent }, isTransient)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, CircuitStateClosed, b.State())

	err = b.Execute(ctx, func(context.Context) error { return transient }, isTransient)
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, CircuitStateOpen, b.State())

	called := false
	err = b.Execute(ctx, func(context.Context) error { called = true; return nil }, isTransient)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_DisabledAlwaysAllows(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 5; i++ {
		b.RecordFailure()
		require.NoError(t, b.Allow())
	}
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{Enabled: true}.normalized()
	assert.Equal(t, DefaultCircuitBreakerConfig(), cfg)
}
