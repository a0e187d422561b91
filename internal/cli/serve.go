package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/entitystore/internal/config"
	httpAdapter "github.com/aretw0/entitystore/pkg/adapters/http"
	"github.com/aretw0/entitystore/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions configures the serve command.
type ServeOptions struct {
	Config config.Config
	Logger *slog.Logger
}

// Serve runs the HTTP adapter until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := loggerOrNop(opts.Logger)
	hooks := observability.LoggingHooks(logger)
	var handlerOpts []httpAdapter.Option

	if opts.Config.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}
		hooks = hooks.Merge(metrics.Hooks())
		handlerOpts = append(handlerOpts, httpAdapter.WithGatherer(reg))
	}
	handlerOpts = append(handlerOpts, httpAdapter.WithLogger(logger))

	host, err := NewHost(ctx, opts.Config, logger, hooks)
	if err != nil {
		return err
	}
	handler, err := httpAdapter.NewHandler(ctx, host, handlerOpts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.Config.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr, "collections", host.Paths())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Start shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		logger.Info("HTTP server stopped gracefully")
		return nil
	}
}
