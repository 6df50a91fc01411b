package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotdogbot/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		OpenAIAPIKey:    "sk-test",
		ModelName:       config.DefaultModelName,
		TwilioBaseURL:   "https://api.twilio.com",
		ShutdownTimeout: 2 * time.Second,
	}
}

func TestNewApp_PushDisabledWithoutTwilio(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.False(t, a.PushEnabled())
	assert.Empty(t, a.closers)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_WithTwilioAndSQLite(t *testing.T) {
	cfg := testConfig()
	cfg.TwilioAccountSID = "AC123"
	cfg.TwilioAuthToken = "secret"
	cfg.DatabasePath = filepath.Join(t.TempDir(), "verdicts.db")

	a, err := NewApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.True(t, a.PushEnabled())
	assert.Len(t, a.closers, 1)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	cfg := testConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "missing", "dir", "verdicts.db")

	_, err := NewApp(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, a.Run(ctx))
}
