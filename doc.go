// Package waitforapp waits for an HTTP application to become ready.
//
// It is meant for deployment pipelines: after a rollout, poll the
// client-facing URL of the application until the reverse proxy in front of
// it stops answering with errors, then carry on with the next step.
//
// # Quick Start
//
//	res, err := waitforapp.Wait(ctx, waitforapp.PollConfig{
//	    Target:        "https://myapplication.mydomain.com",
//	    RetryInterval: 5 * time.Second,
//	    Timeout:       10 * time.Minute,
//	})
//
// # Readiness
//
// Every attempt is a single GET request. Redirects are not followed, so any
// status below 400 (including 3xx) counts as ready and stops polling. A
// status of 400 or above is a temporary failure and is retried.
//
// The deadline is computed once, when polling starts. After a not-ready
// answer the poll gives up only if the current time is strictly past the
// deadline, so the last attempt can happen slightly after Timeout.
//
// # Configuration
//
// [PollConfig] describes what to poll. [NewPollConfig] starts from
// [DefaultRetryInterval] and [DefaultTimeout]. An empty target and zero or
// negative durations are rejected with a [*ConfigError].
//
// A [Waiter] is configured with functional options:
//
//	w, err := waitforapp.New(
//	    waitforapp.WithSink(waitforapp.NewConsoleSink(os.Stdout, os.Stderr)),
//	    waitforapp.WithRequestTimeout(5 * time.Second),
//	    waitforapp.WithRetryOnTransportError(true),
//	)
//
// [WithFetcher], [WithSleeper] and [WithClock] replace the HTTP client, the
// pause between attempts and the time source, which keeps tests free of
// real network calls and real waiting.
//
// # Output
//
// Human-readable progress lines go to a [Sink]. Informational lines are only
// written when PollConfig.Verbose is set; the timeout line is always written
// at error severity. Structured logs go to the *slog.Logger given with
// [WithLogger], tagged with the run ID of each Wait call.
//
// # Errors
//
//   - [*ConfigError]: invalid PollConfig, nothing was requested.
//   - [*TimeoutError]: the deadline passed before the application was ready.
//   - transport errors from the Fetcher, returned unchanged unless
//     [WithRetryOnTransportError] is enabled.
//   - context cancellation, wrapping ctx.Err().
//
// # Architecture
//
//   - internal/poller: pooled HTTP client and context-aware sleep
//   - config: YAML/TOML config files with environment variable expansion
//   - cmd/waitforapp: the command line interface
package waitforapp
