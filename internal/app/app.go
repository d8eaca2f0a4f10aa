package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/vocabook/internal/adapter/postgres"
	vocabrepo "github.com/heartmarshall/vocabook/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/vocabook/internal/adapter/provider/merriam"
	"github.com/heartmarshall/vocabook/internal/auth"
	"github.com/heartmarshall/vocabook/internal/config"
	"github.com/heartmarshall/vocabook/internal/metrics"
	vocabsvc "github.com/heartmarshall/vocabook/internal/service/vocabulary"
	"github.com/heartmarshall/vocabook/internal/transport/middleware"
)

// Run is the persistence gateway entry point. It loads configuration,
// connects to PostgreSQL, applies migrations when enabled, and serves HTTP
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("addr", cfg.Server.Addr()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if !cfg.Server.SkipMigrations {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	m := metrics.New()

	resolver := merriam.NewResolver(cfg.Lookup.APIKey, logger,
		merriam.WithBaseURL(cfg.Lookup.BaseURL),
		merriam.WithTimeout(cfg.Lookup.Timeout),
		merriam.WithRetryDelay(cfg.Lookup.RetryDelay),
		merriam.WithMetrics(m),
	)
	if cfg.Lookup.APIKey == "" {
		logger.Warn("lookup.api_key is empty; every definition lookup will fall back")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := NewHandler(cfg, logger, ServerDeps{
		DB:         pool,
		Vocabulary: vocabsvc.NewService(logger, vocabrepo.New(pool), m),
		Resolver:   resolver,
		Tokens:     auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		Metrics:    m,
		Limiter:    limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
