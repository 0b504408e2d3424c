package poller

import (
	"context"
	"time"
)

// Sleep blocks for d or until ctx is done, whichever comes first.
//
// It returns ctx.Err() if the context ended the wait and nil otherwise.
// A non-positive d returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
