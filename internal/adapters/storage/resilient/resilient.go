// Package resilient decorates a DurableStorage with a circuit breaker, an
// optional rate limiter, bounded retries and per-call metrics.
//
// Calls flow through the layers in this order:
//
//	Circuit Breaker → Rate Limiter → Retry → backend
//
// Construction:
//
//	s := resilient.New(redisStorage, &cfg.Storage, metrics, logger)
//
// A missing slot is a normal answer, not a failure: it is neither retried nor
// counted against the breaker.
package resilient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/platform/config"
	"github.com/jsamuelsen11/boardstate/internal/platform/telemetry"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

var _ ports.DurableStorage = (*Storage)(nil)

// Storage operation names used in logs and metrics.
const (
	OpGet    = "get"
	OpSet    = "set"
	OpRemove = "remove"
)

// Backend is a DurableStorage that can also report its health.
type Backend interface {
	ports.DurableStorage
	ports.HealthChecker
}

// retryConfig holds the retry policy values extracted from config.RetryConfig.
type retryConfig struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// Storage wraps a Backend.
type Storage struct {
	inner    Backend
	breaker  *gobreaker.CircuitBreaker[[]byte]
	limiter  *rate.Limiter // nil when rate limiting is disabled
	retryCfg retryConfig
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// New wraps inner using the retry, circuit breaker and rate limit settings of
// cfg. If metrics is nil, metric recording is skipped.
func New(inner Backend, cfg *config.StorageConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), max(cfg.RateLimit.BurstSize, 1))
	}

	return &Storage{
		inner:   inner,
		breaker: cb,
		limiter: limiter,
		retryCfg: retryConfig{
			maxAttempts:     cfg.Retry.MaxAttempts,
			initialInterval: cfg.Retry.InitialInterval,
			maxInterval:     cfg.Retry.MaxInterval,
			multiplier:      cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Storage) GetItem(ctx context.Context, key string) ([]byte, error) {
	return s.execute(ctx, OpGet, key, func(ctx context.Context) ([]byte, error) {
		return s.inner.GetItem(ctx, key)
	})
}

func (s *Storage) SetItem(ctx context.Context, key string, value []byte) error {
	_, err := s.execute(ctx, OpSet, key, func(ctx context.Context) ([]byte, error) {
		return nil, s.inner.SetItem(ctx, key, value)
	})
	return err
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	_, err := s.execute(ctx, OpRemove, key, func(ctx context.Context) ([]byte, error) {
		return nil, s.inner.RemoveItem(ctx, key)
	})
	return err
}

// Name returns the wrapped backend's name.
func (s *Storage) Name() string {
	return s.inner.Name()
}

// HealthCheck reports the breaker state first and only asks the backend when
// the breaker is closed.
//
// State mapping:
//   - "closed":    the backend's own HealthCheck decides.
//   - "half-open": returns an error indicating degraded state.
//   - "open":      returns an error indicating failure.
func (s *Storage) HealthCheck(ctx context.Context) error {
	switch state := s.breaker.State(); state {
	case gobreaker.StateClosed:
		return s.inner.HealthCheck(ctx)
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", s.inner.Name())
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", s.inner.Name())
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", s.inner.Name(), state)
	}
}

func (s *Storage) execute(ctx context.Context, op, key string, call func(context.Context) ([]byte, error)) ([]byte, error) {
	start := time.Now()

	value, err := s.breaker.Execute(func() ([]byte, error) {
		if err := s.waitForRateLimit(ctx); err != nil {
			return nil, err
		}
		return s.doWithRetry(ctx, op, key, call)
	})

	result := resultOf(err)
	s.metrics.RecordStorageOperation(ctx, s.inner.Name(), op, result, start)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s %s %s: %w", s.inner.Name(), op, key, errors.Join(domain.ErrUnavailable, err))
	}
	return value, err
}

// waitForRateLimit blocks until the limiter allows the call or the context is
// canceled. Returns nil immediately when rate limiting is disabled.
func (s *Storage) waitForRateLimit(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	default:
		return "error"
	}
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
