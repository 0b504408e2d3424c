package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/waitforapp"
)

func main() {
	// start mock application (see mock_server.go); ready after 5 seconds
	go StartMockApplication(":9999", 5*time.Second)
	time.Sleep(100 * time.Millisecond)

	fmt.Println()
	fmt.Println("  waitforapp demo")
	fmt.Println("  Polling http://localhost:9999/health every second.")
	fmt.Println("  The mock application becomes ready after 5 seconds.")
	fmt.Println("  Press Ctrl+C to abort")
	fmt.Println()

	// set up context with signal handling so Ctrl+C aborts the wait
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := waitforapp.PollConfig{
		Target:        "http://localhost:9999/health",
		Verbose:       true,
		RetryInterval: time.Second,
		Timeout:       30 * time.Second,
	}

	res, err := waitforapp.Wait(ctx, cfg,
		waitforapp.WithSink(waitforapp.NewConsoleSink(os.Stdout, os.Stderr)),
		waitforapp.WithRequestTimeout(2*time.Second),
	)
	if err != nil {
		var timeoutErr *waitforapp.TimeoutError
		if errors.As(err, &timeoutErr) {
			slog.Error("gave up", "attempts", timeoutErr.Attempts, "last_status", timeoutErr.LastStatus)
		} else {
			slog.Error("wait failed", "error", err)
		}
		os.Exit(1)
	}

	slog.Info("application ready",
		"run_id", res.RunID,
		"attempts", res.Attempts,
		"status_code", res.StatusCode,
		"elapsed", res.Elapsed.Round(time.Millisecond).String(),
	)
}
