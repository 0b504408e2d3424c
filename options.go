package waitforapp

import (
	"errors"
	"log/slog"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// waiterConfig holds mutable state during Waiter construction.
type waiterConfig struct {
	fetcher               Fetcher
	sleeper               Sleeper
	clock                 Clock
	sink                  Sink
	logger                *slog.Logger
	requestTimeout        time.Duration
	retryOnTransportError bool
}

// Option is a function that configures a [Waiter] during construction.
//
// Options return an error if validation fails.
type Option func(*waiterConfig) error

// WithFetcher replaces the built-in HTTP client with f.
//
// This is mainly useful in tests and for callers that already own an HTTP
// client. Returns an error if f is nil.
func WithFetcher(f Fetcher) Option {
	return func(cfg *waiterConfig) error {
		if f == nil {
			return errors.New("fetcher cannot be nil")
		}
		cfg.fetcher = f
		return nil
	}
}

// WithSleeper replaces the timer-based pause between attempts.
func WithSleeper(s Sleeper) Option {
	return func(cfg *waiterConfig) error {
		if s == nil {
			return errors.New("sleeper cannot be nil")
		}
		cfg.sleeper = s
		return nil
	}
}

// WithClock replaces the wall clock used to compute the deadline.
func WithClock(c Clock) Option {
	return func(cfg *waiterConfig) error {
		if c == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clock = c
		return nil
	}
}

// WithSink sets where progress and error lines are written.
// Defaults to [DiscardSink].
func WithSink(s Sink) Option {
	return func(cfg *waiterConfig) error {
		if s == nil {
			return errors.New("sink cannot be nil")
		}
		cfg.sink = s
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for structured poll events.
// If not specified, [slog.Default] is used.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *waiterConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithRequestTimeout bounds each individual probe of the built-in HTTP
// client. Defaults to 10 seconds. Ignored when [WithFetcher] is used.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *waiterConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithRetryOnTransportError makes transport failures (connection refused,
// DNS errors, request timeouts) count as "not ready" instead of ending the
// poll. Off by default.
func WithRetryOnTransportError(retry bool) Option {
	return func(cfg *waiterConfig) error {
		cfg.retryOnTransportError = retry
		return nil
	}
}
