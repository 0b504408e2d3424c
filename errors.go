package waitforapp

import (
	"fmt"
	"time"
)

// ConfigError reports an invalid [PollConfig]. It is returned before any
// network call is made and is never retried.
type ConfigError struct {
	// Field names the offending setting, e.g. "target".
	Field string

	// Reason describes what is wrong with it.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// TimeoutError reports that the deadline passed while the target was still
// not ready.
type TimeoutError struct {
	// Timeout is the configured polling budget.
	Timeout time.Duration

	// Attempts is the number of probes issued before giving up.
	Attempts int

	// LastStatus is the status code of the final probe. Zero if the final
	// probe failed at the transport level.
	LastStatus int

	// LastErr is the transport error of the final probe, if any. Only set
	// when transport errors are retried.
	LastErr error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("application did not become ready within the timeout period (%ss) after %d attempts",
		formatSeconds(e.Timeout), e.Attempts)
}

// Unwrap returns the last transport error, if any.
func (e *TimeoutError) Unwrap() error {
	return e.LastErr
}
