package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/upb/casting-agency/app"
	"github.com/upb/casting-agency/config"
	"github.com/upb/casting-agency/internal/observability"
	"github.com/upb/casting-agency/routes"
	"go.uber.org/zap"
)

func main() {
	logger, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

// initLogger builds the logger from LOG_LEVEL and LOG_FORMAT before the
// rest of the configuration is loaded.
func initLogger() (*zap.Logger, error) {
	return observability.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("starting casting agency api",
		zap.String("environment", cfg.Environment),
		zap.String("address", cfg.Server.Address()),
		zap.Bool("tls", cfg.Server.TLS.Enabled))

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(context.Background()); err != nil {
			logger.Error("failed to close dependencies", zap.Error(err))
		}
	}()

	srv := newServer(cfg, routes.SetupRoutes(deps))
	return serve(ctx, srv, cfg, logger)
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func serve(ctx context.Context, srv *http.Server, cfg *config.Config, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("address", srv.Addr))

		var err error
		if cfg.Server.TLS.Enabled {
			err = srv.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
