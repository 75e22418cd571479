package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/last-man-standing/internal/config"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_AllDisabled(t *testing.T) {
	shutdown, err := Start(config.Config{AppEnv: config.EnvDev, ServiceName: "lms-test"}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStart_PprofLifecycle(t *testing.T) {
	cfg := config.Config{AppEnv: config.EnvDev, PprofEnabled: true, PprofAddr: "127.0.0.1:0"}
	shutdown, err := Start(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func stubSinks(t *testing.T, stubs ...sink) {
	t.Helper()
	orig := sinks
	sinks = stubs
	t.Cleanup(func() { sinks = orig })
}

func TestStart_StopsInReverseAndJoinsErrors(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")
	var order []string
	stub := func(name string, stopErr error) sink {
		return sink{name, func(config.Config, *logging.Logger) (ShutdownFunc, error) {
			return func(context.Context) error { order = append(order, name); return stopErr }, nil
		}}
	}
	stubSinks(t, stub("first", errA), stub("second", errB))

	shutdown, err := Start(config.Config{}, logging.NewNop())
	require.NoError(t, err)

	err = shutdown(context.Background())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestStart_FailureStopsStartedSinks(t *testing.T) {
	stopped := false
	stubSinks(t,
		sink{"ok", func(config.Config, *logging.Logger) (ShutdownFunc, error) {
			return func(context.Context) error { stopped = true; return nil }, nil
		}},
		sink{"broken", func(config.Config, *logging.Logger) (ShutdownFunc, error) {
			return nil, errors.New("no server")
		}},
	)

	_, err := Start(config.Config{}, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start broken")
	assert.True(t, stopped)
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}
