package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/config"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/notify"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "last-man-standing-api",
		HTTPAddr:           ":0",
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		AutoPickMaxWorkers: 2,
		InternalJobToken:   "secret",
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	path := "/v1/seasons/" + url.PathEscape(memory.SeasonID2024) + "/gameweeks"
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gameweek_number":3`)
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = " "
	_, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestLoadDataset(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		ds, err := loadDataset(config.Config{})
		require.NoError(t, err)
		assert.NotEmpty(t, ds.Teams)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadDataset(config.Config{SeedFile: filepath.Join(t.TempDir(), "absent.yaml")})
		assert.Error(t, err)
	})

	t.Run("repo dev seed", func(t *testing.T) {
		seed := filepath.Join("..", "..", "db", "seed", "dev.yaml")
		if _, err := os.Stat(seed); err != nil {
			t.Skip("dev seed not present")
		}
		ds, err := loadDataset(config.Config{SeedFile: seed})
		require.NoError(t, err)
		assert.NotEmpty(t, ds.Seasons)
	})
}

func TestNewAutoPickNotifier(t *testing.T) {
	cfg := testConfig()
	_, isWebhook := newAutoPickNotifier(cfg, logging.NewNop()).(*notify.WebhookNotifier)
	assert.False(t, isWebhook)
	var _ usecase.AutoPickNotifier = newAutoPickNotifier(cfg, logging.NewNop())

	cfg.AutoPickWebhookURL = "http://127.0.0.1:1/hook"
	cfg.AutoPickWebhookTimeout = time.Second
	cfg.AutoPickWebhookCircuitFailures = 1
	cfg.AutoPickWebhookCircuitOpenAfter = time.Second
	cfg.AutoPickWebhookCircuitHalfOpen = 1
	_, isWebhook = newAutoPickNotifier(cfg, logging.NewNop()).(*notify.WebhookNotifier)
	assert.True(t, isWebhook)
}
