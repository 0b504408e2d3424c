package waitforapp

import (
	"strconv"
	"time"
)

const (
	// DefaultRetryInterval is the pause between a not-ready response and the
	// next attempt used by [NewPollConfig].
	DefaultRetryInterval = 10 * time.Second

	// DefaultTimeout is the total polling budget used by [NewPollConfig].
	DefaultTimeout = 2500 * time.Second
)

// PollConfig describes a single readiness poll.
//
// A PollConfig is built once per invocation and is not modified while
// polling. Both durations must be positive; use [NewPollConfig] to start from
// the defaults.
type PollConfig struct {
	// Target is the URL to probe, e.g. https://myapplication.mydomain.com.
	// Required.
	Target string

	// Verbose enables informational progress messages on the [Sink].
	// Error messages are emitted regardless.
	Verbose bool

	// RetryInterval is the delay between failed attempts.
	RetryInterval time.Duration

	// Timeout is the total time budget, measured from the start of polling.
	Timeout time.Duration
}

// NewPollConfig returns a PollConfig for target with [DefaultRetryInterval]
// and [DefaultTimeout].
func NewPollConfig(target string) PollConfig {
	return PollConfig{
		Target:        target,
		RetryInterval: DefaultRetryInterval,
		Timeout:       DefaultTimeout,
	}
}

// Validate reports whether the config can be polled.
//
// It returns a [*ConfigError] if Target is empty or if either duration is
// zero or negative.
func (c PollConfig) Validate() error {
	if c.Target == "" {
		return &ConfigError{Field: "target", Reason: "is required"}
	}
	if c.RetryInterval <= 0 {
		return &ConfigError{Field: "retry interval", Reason: "must be positive, got " + formatSeconds(c.RetryInterval) + "s"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "timeout", Reason: "must be positive, got " + formatSeconds(c.Timeout) + "s"}
	}
	return nil
}

// formatSeconds renders d as a plain number of seconds, e.g. "10" or "0.5".
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
