// Package retry provides a bounded exponential-backoff policy. It wraps page
// navigation only: a transient navigation retry must never re-run extraction
// or dedup side effects, so nothing above the page loader is retried.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

type Config struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.2,
	}
}

// Retrier re-runs an operation until it succeeds, the attempts are exhausted
// or the context is cancelled.
type Retrier struct {
	cfg Config
}

func New(cfg Config) *Retrier {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Retrier{cfg: cfg}
}

func (r *Retrier) Do(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		if attempt == r.cfg.MaxAttempts {
			break
		}

		delay := r.delay(attempt)
		slog.Debug("operation failed, backing off",
			"attempt", attempt,
			"delay", delay,
			"error", lastErr)

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", r.cfg.MaxAttempts, lastErr)
}

func (r *Retrier) delay(attempt int) time.Duration {
	delay := float64(r.cfg.BaseDelay) * math.Pow(r.cfg.BackoffFactor, float64(attempt-1))
	if delay > float64(r.cfg.MaxDelay) {
		delay = float64(r.cfg.MaxDelay)
	}
	// Jitter spreads retries from concurrent jobs apart.
	delay *= 1.0 + (rand.Float64()-0.5)*r.cfg.JitterFactor
	return time.Duration(delay)
}
