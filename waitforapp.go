package waitforapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/waitforapp/internal/poller"
)

// Fetcher performs a single GET request against url and reports the status
// code. A non-nil error means the request failed at the transport level.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (statusCode int, err error)
}

// FetcherFunc adapts an ordinary function to the [Fetcher] interface.
type FetcherFunc func(ctx context.Context, url string) (int, error)

// Fetch calls f(ctx, url).
func (f FetcherFunc) Fetch(ctx context.Context, url string) (int, error) {
	return f(ctx, url)
}

// Sleeper pauses between attempts. Sleep returns early only when ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts an ordinary function to the [Sleeper] interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts an ordinary function to the [Clock] interface.
type ClockFunc func() time.Time

// Now calls f().
func (f ClockFunc) Now() time.Time {
	return f()
}

// Result describes a finished poll.
type Result struct {
	// RunID correlates the log lines of one Wait call.
	RunID string

	// Attempts is the number of probes issued.
	Attempts int

	// StatusCode is the status of the last probe that got a response.
	StatusCode int

	// Elapsed is the time from the start of polling to the last probe.
	Elapsed time.Duration
}

// Waiter polls targets until they are ready.
//
// A Waiter holds no per-poll state, so concurrent [Waiter.Wait] calls are
// safe. Create one with [New] and release its connections with
// [Waiter.Close].
type Waiter struct {
	fetcher               Fetcher
	sleeper               Sleeper
	clock                 Clock
	sink                  Sink
	logger                *slog.Logger
	retryOnTransportError bool
	client                *poller.Client
}

// New creates a [Waiter] with the given options.
//
// Defaults:
//   - Fetcher: pooled HTTP client with a 10 second per-request timeout
//   - Sleeper: timer wait that honours context cancellation
//   - Clock: [time.Now]
//   - Sink: [DiscardSink]
//   - Logger: [slog.Default]
func New(opts ...Option) (*Waiter, error) {
	cfg := &waiterConfig{
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	w := &Waiter{
		fetcher:               cfg.fetcher,
		sleeper:               cfg.sleeper,
		clock:                 cfg.clock,
		sink:                  cfg.sink,
		logger:                cfg.logger,
		retryOnTransportError: cfg.retryOnTransportError,
	}

	if w.fetcher == nil {
		w.client = poller.NewClient()
		w.fetcher = httpFetcher{client: w.client, timeout: cfg.requestTimeout}
	}
	if w.sleeper == nil {
		w.sleeper = SleeperFunc(poller.Sleep)
	}
	if w.clock == nil {
		w.clock = ClockFunc(time.Now)
	}
	if w.sink == nil {
		w.sink = DiscardSink
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	return w, nil
}

// Close releases idle connections held by the built-in HTTP client.
// Safe to call multiple times.
func (w *Waiter) Close() {
	if w == nil {
		return
	}
	w.client.Close()
}

// Wait is a convenience wrapper that creates a [Waiter], polls cfg once and
// closes the Waiter.
func Wait(ctx context.Context, cfg PollConfig, opts ...Option) (Result, error) {
	w, err := New(opts...)
	if err != nil {
		return Result{}, err
	}
	defer w.Close()
	return w.Wait(ctx, cfg)
}

// Wait probes cfg.Target until it answers with a status below 400.
//
// The deadline is fixed when polling starts and never extended. After each
// not-ready answer Wait gives up if the clock is strictly past the deadline,
// otherwise it sleeps for cfg.RetryInterval and tries again.
//
// Errors:
//   - [*ConfigError] if cfg is invalid; no request is made.
//   - [*TimeoutError] if the deadline passes while the target is not ready.
//   - the Fetcher's error, unmodified, on a transport failure (unless
//     [WithRetryOnTransportError] is set).
//   - an error wrapping ctx.Err() if ctx is cancelled.
//
// Terminal configuration and timeout failures are also written to the Sink
// at error severity. Informational lines are written only if cfg.Verbose.
func (w *Waiter) Wait(ctx context.Context, cfg PollConfig) (Result, error) {
	if err := cfg.Validate(); err != nil {
		w.sink.Error(err.Error())
		return Result{}, err
	}

	res := Result{RunID: uuid.NewString()}
	logger := w.logger.With("run_id", res.RunID, "target", cfg.Target)

	start := w.clock.Now()
	deadline := start.Add(cfg.Timeout)

	w.info(cfg, "Waiting for: "+cfg.Target)
	w.info(cfg, "Retry interval (seconds): "+formatSeconds(cfg.RetryInterval))
	w.info(cfg, "Timeout interval (seconds): "+formatSeconds(cfg.Timeout))
	logger.Debug("polling started",
		"retry_interval", cfg.RetryInterval.String(),
		"timeout", cfg.Timeout.String(),
	)

	for {
		res.Attempts++
		probeStart := w.clock.Now()
		code, err := w.fetcher.Fetch(ctx, cfg.Target)
		now := w.clock.Now()
		latency := now.Sub(probeStart)
		res.Elapsed = now.Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return res, fmt.Errorf("wait for %s aborted: %w", cfg.Target, ctx.Err())
			}
			if !w.retryOnTransportError {
				logger.Warn("probe failed",
					"attempt", res.Attempts,
					"latency_ms", latency.Milliseconds(),
					"error", err.Error(),
				)
				return res, err
			}
			logger.Debug("probe failed, retrying",
				"attempt", res.Attempts,
				"latency_ms", latency.Milliseconds(),
				"error", err.Error(),
			)
		} else {
			res.StatusCode = code
			logger.Debug("probe completed",
				"attempt", res.Attempts,
				"status_code", code,
				"latency_ms", latency.Milliseconds(),
				"readiness", ClassifyStatus(code).String(),
			)
			if ClassifyStatus(code) == ReadinessReady {
				w.info(cfg, "Application: "+cfg.Target+" is ready")
				logger.Info("application ready",
					"attempts", res.Attempts,
					"elapsed_ms", res.Elapsed.Milliseconds(),
				)
				return res, nil
			}
		}

		w.info(cfg, "Application: "+cfg.Target+" is not ready. Retrying in "+formatSeconds(cfg.RetryInterval)+"s.")

		if w.clock.Now().After(deadline) {
			w.sink.Error("Application did not become ready within the timeout period (" + formatSeconds(cfg.Timeout) + "s). Aborting.")
			logger.Error("application not ready before timeout",
				"attempts", res.Attempts,
				"last_status", res.StatusCode,
			)
			return res, &TimeoutError{
				Timeout:    cfg.Timeout,
				Attempts:   res.Attempts,
				LastStatus: lastStatus(code, err),
				LastErr:    err,
			}
		}

		if err := w.sleeper.Sleep(ctx, cfg.RetryInterval); err != nil {
			return res, fmt.Errorf("wait for %s aborted: %w", cfg.Target, err)
		}
	}
}

// info emits msg only when verbose output is enabled.
func (w *Waiter) info(cfg PollConfig, msg string) {
	if cfg.Verbose {
		w.sink.Info(msg)
	}
}

// lastStatus returns the status of the final probe, or zero if it failed.
func lastStatus(code int, err error) int {
	if err != nil {
		return 0
	}
	return code
}

// httpFetcher adapts poller.Client to the Fetcher interface.
type httpFetcher struct {
	client  *poller.Client
	timeout time.Duration
}

func (f httpFetcher) Fetch(ctx context.Context, url string) (int, error) {
	resp := f.client.Fetch(ctx, url, f.timeout)
	if resp.Error != nil {
		return 0, resp.Error
	}
	return resp.StatusCode, nil
}
