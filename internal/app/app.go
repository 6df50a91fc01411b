package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"hotdogbot/internal/application/reply"
	"hotdogbot/internal/infrastructure/config"
	"hotdogbot/internal/infrastructure/llm"
	"hotdogbot/internal/infrastructure/metrics"
	"hotdogbot/internal/infrastructure/persistence/sqlite"
	"hotdogbot/internal/infrastructure/pubsub"
	"hotdogbot/internal/infrastructure/twilio"
	"hotdogbot/internal/interfaces/webhook"
)

type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	classifier *llm.Client
	server     *http.Server
	pushOn     bool
	closers    []func() error
}

// NewApp wires every adapter from cfg. Close must be called to release the
// verdict sinks.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	classifier, err := llm.NewClient(cfg, m, logger)
	if err != nil {
		return nil, fmt.Errorf("llm client error: %w", err)
	}

	a := &App{cfg: cfg, logger: logger, classifier: classifier}

	recorders, err := a.openVerdictSinks(ctx)
	if err != nil {
		return nil, err
	}

	routes := webhook.RouterConfig{
		Logger:  logger,
		TwiML:   webhook.NewTwiMLHandler(reply.NewInlineReplyUseCase(classifier, logger, recorders...), m, logger),
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	if cfg.HasTwilio() {
		sender, err := twilio.NewClient(cfg, &http.Client{Timeout: 15 * time.Second}, m)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("twilio client error: %w", err)
		}
		routes.Push = webhook.NewPushHandler(reply.NewPushReplyUseCase(classifier, sender, logger, recorders...), m, logger)
		a.pushOn = true
	} else {
		logger.Warn("twilio credentials not set, push webhook disabled",
			zap.String("path", webhook.PushPath))
	}

	a.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      webhook.NewRouter(routes),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) PushEnabled() bool {
	return a.pushOn
}

// Run serves until ctx is done, then shuts the server down within the
// configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("hotdogbot starting",
			zap.String("addr", a.server.Addr),
			zap.String("model", a.classifier.Model()),
			zap.Bool("push_enabled", a.pushOn),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

// Close releases the verdict sinks. Safe to call more than once.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Error("close verdict sink", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *App) openVerdictSinks(ctx context.Context) ([]reply.VerdictRecorder, error) {
	var recorders []reply.VerdictRecorder

	if a.cfg.DatabasePath != "" {
		repo, err := sqlite.NewVerdictRepository(a.cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite error: %w", err)
		}
		recorders = append(recorders, repo)
		a.closers = append(a.closers, repo.Close)
		a.logger.Info("recording verdicts to sqlite", zap.String("path", a.cfg.DatabasePath))
	}

	if a.cfg.HasPubSub() {
		var opts []option.ClientOption
		if a.cfg.PubSubCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(a.cfg.PubSubCredentialsFile))
		}
		pub, err := pubsub.NewPublisher(ctx, a.cfg.PubSubProject, a.cfg.PubSubTopic, opts...)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("pubsub publisher error: %w", err)
		}
		recorders = append(recorders, pub)
		a.closers = append(a.closers, pub.Close)
		a.logger.Info("publishing verdicts to pubsub",
			zap.String("project", a.cfg.PubSubProject),
			zap.String("topic", a.cfg.PubSubTopic),
		)
	}

	return recorders, nil
}
