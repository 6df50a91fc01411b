package webhook

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	PushPath  = "/webhook/messages"
	TwiMLPath = "/webhook/twiml"
)

type RouterConfig struct {
	Logger *zap.Logger
	// Push is nil when no messaging provider credentials are configured.
	Push    *PushHandler
	TwiML   *TwiMLHandler
	Metrics http.Handler
}

// NewRouter creates a chi router with the webhook routes, /health and /metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	if cfg.Push != nil {
		r.Method(http.MethodPost, PushPath, cfg.Push)
	}
	if cfg.TwiML != nil {
		r.Method(http.MethodPost, TwiMLPath, cfg.TwiML)
	}

	return r
}
