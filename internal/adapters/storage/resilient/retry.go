package resilient

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jsamuelsen11/boardstate/internal/domain"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// doWithRetry runs call until it succeeds, fails with a non-retryable error,
// or maxAttempts is reached. Delays grow exponentially with ±25% jitter.
func (s *Storage) doWithRetry(
	ctx context.Context, op, key string, call func(context.Context) ([]byte, error),
) ([]byte, error) {
	if s.retryCfg.maxAttempts <= 0 {
		return nil, fmt.Errorf("resilient: maxAttempts must be >= 1, got %d", s.retryCfg.maxAttempts)
	}

	var lastErr error

	for attempt := range s.retryCfg.maxAttempts {
		if attempt > 0 {
			if err := s.waitForRetry(ctx, op, key, attempt, lastErr); err != nil {
				return nil, err
			}
		}

		value, err := call(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// waitForRetry calculates the backoff delay, logs the retry attempt at WARN
// level, and waits for the delay or context cancellation.
func (s *Storage) waitForRetry(ctx context.Context, op, key string, attempt int, lastErr error) error {
	delay := backoff(attempt, s.retryCfg)

	s.logger.WarnContext(ctx, "retrying storage call",
		slog.String("operation", "storage."+op),
		slog.String("backend", s.inner.Name()),
		slog.String("slot", key),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", s.retryCfg.maxAttempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoff calculates the delay for a given retry attempt using exponential
// backoff with ±25% jitter. The attempt parameter is 1-indexed (attempt 1 is
// the first retry).
func backoff(attempt int, cfg retryConfig) time.Duration {
	delay := float64(cfg.initialInterval) * math.Pow(cfg.multiplier, float64(attempt-1))

	// Cap at max interval before applying jitter.
	if delay > float64(cfg.maxInterval) {
		delay = float64(cfg.maxInterval)
	}

	jitter := delay * jitterFraction
	delay += jitter * (2*secureRandFloat64() - 1)

	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// IEEE 754 double-precision constants for random float generation.
const (
	significandBits = 53
	uint64Bits      = 64
)

// secureRandFloat64 returns a random float64 in [0, 1) using crypto/rand.
func secureRandFloat64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>(uint64Bits-significandBits)) / float64(uint64(1)<<significandBits)
}

// isRetryable reports whether a backend error may succeed on another attempt.
// Cancellation, a missing slot and rejected input are final.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return isFailure(err)
}

// isFailure reports whether err says something about the backend's health.
// Answers such as "slot absent" or "bad key" do not.
func isFailure(err error) bool {
	return !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrValidation)
}
