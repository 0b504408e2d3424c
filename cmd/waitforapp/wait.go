package main

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/waitforapp"
)

// reportedError marks a failure that was already written to the console.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// trackingSink remembers whether an error line was written.
type trackingSink struct {
	waitforapp.Sink
	reported bool
}

func (s *trackingSink) Error(msg string) {
	s.reported = true
	s.Sink.Error(msg)
}

// newLogger creates the structured logger for --log-format.
func newLogger(format string, verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts))
	case logFormatText:
		return slog.New(slog.NewTextHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

func runWait(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(s.logFormat, s.poll.Verbose, cmd.ErrOrStderr())

	var console waitforapp.Sink = waitforapp.NewConsoleSink(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if s.logFormat != logFormatNone {
		// mirror progress lines into the structured log
		console = waitforapp.MultiSink(console, waitforapp.NewLogSink(logger.With("target", s.poll.Target)))
	}
	sink := &trackingSink{Sink: console}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = waitforapp.Wait(ctx, s.poll,
		waitforapp.WithSink(sink),
		waitforapp.WithLogger(logger),
		waitforapp.WithRequestTimeout(s.requestTimeout),
		waitforapp.WithRetryOnTransportError(s.retryOnError),
	)
	if err != nil {
		if sink.reported {
			return &reportedError{err: err}
		}
		return err
	}
	return nil
}
