// Package main is the entry point for the boardstate service. It wires all
// dependencies using samber/do v2, hydrates the stores, starts the HTTP server,
// and handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/boardstate/internal/adapters/http"
	"github.com/jsamuelsen11/boardstate/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/boardstate/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/file"
	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/redis"
	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/resilient"
	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/sqlite"

	"github.com/jsamuelsen11/boardstate/internal/app"
	"github.com/jsamuelsen11/boardstate/internal/platform/config"
	"github.com/jsamuelsen11/boardstate/internal/platform/health"
	"github.com/jsamuelsen11/boardstate/internal/platform/logging"
	"github.com/jsamuelsen11/boardstate/internal/platform/telemetry"
	"github.com/jsamuelsen11/boardstate/internal/ports"
	"github.com/jsamuelsen11/boardstate/internal/store"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	defaultProfile        = "local"
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		profile = defaultProfile
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(ctx, injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	storage := do.MustInvoke[*resilient.Storage](injector)
	stores := do.MustInvoke[*app.Stores](injector)
	defer closeBackend(do.MustInvoke[resilient.Backend](injector), logger)

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(storage)
	registry.Register(stores)

	if cfg.Storage.HydrateOnStart {
		if _, err := stores.Hydrate(ctx); err != nil {
			return fmt.Errorf("hydrating stores: %w", err)
		}
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Without hydrate_on_start, readiness stays down and writes get a 503
	// until the stores load.
	if !cfg.Storage.HydrateOnStart {
		go func() { _, _ = stores.Hydrate(ctx) }()
	}

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (resilient.Backend, error) {
		return openBackend(ctx, &cfg.Storage)
	})

	do.Provide(injector, func(i do.Injector) (*resilient.Storage, error) {
		backend := do.MustInvoke[resilient.Backend](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return resilient.New(backend, &cfg.Storage, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Stores, error) {
		storage := do.MustInvoke[*resilient.Storage](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewStores(storage, logger, app.WithStoreOptions(
			store.WithLogger(logger),
			store.WithMetrics(metrics),
			store.WithWriteTimeout(cfg.Storage.WriteTimeout),
		)), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		return handlers.NewTaskHandler(do.MustInvoke[*app.Stores](i).Tasks), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		return handlers.NewUserHandler(do.MustInvoke[*app.Stores](i).Users), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProductHandler, error) {
		return handlers.NewProductHandler(do.MustInvoke[*app.Stores](i).Products), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		taskH := do.MustInvoke[*handlers.TaskHandler](i)
		userH := do.MustInvoke[*handlers.UserHandler](i)
		productH := do.MustInvoke[*handlers.ProductHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		stores := do.MustInvoke[*app.Stores](i)

		return adapthttp.NewRouter(taskH, userH, productH, healthH, cfg.Server.WriteTimeout,
			middleware.Stack(logger, metrics, stores.Hydrated),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// openBackend opens the slot backend named by cfg.Backend.
func openBackend(ctx context.Context, cfg *config.StorageConfig) (resilient.Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		s, err := file.New(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening file storage: %w", err)
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite storage: %w", err)
		}
		return s, nil
	case config.BackendRedis:
		return redis.New(redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.KeyPrefix,
		}), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// closeBackend releases backends that hold connections or file handles.
func closeBackend(backend resilient.Backend, logger *slog.Logger) {
	c, ok := backend.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.Error("storage close error", slog.Any("error", err))
	}
}
