package waitforapp

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

// Sink receives the human-readable progress lines of a poll.
//
// Info is called for verbose progress lines only. Error is called for
// terminal failures regardless of verbosity.
type Sink interface {
	Info(msg string)
	Error(msg string)
}

// DiscardSink drops every message. It is the default for library use.
var DiscardSink Sink = discardSink{}

type discardSink struct{}

func (discardSink) Info(string)  {}
func (discardSink) Error(string) {}

// ConsoleSink writes progress lines to out and error lines to errOut,
// coloured red when errOut is a terminal.
type ConsoleSink struct {
	out      io.Writer
	errOut   io.Writer
	errColor *color.Color
}

// NewConsoleSink creates a [ConsoleSink]. Colour is disabled automatically
// when stdout is not a TTY or NO_COLOR is set.
func NewConsoleSink(out, errOut io.Writer) *ConsoleSink {
	return &ConsoleSink{
		out:      out,
		errOut:   errOut,
		errColor: color.New(color.FgRed),
	}
}

// Info writes msg to the info writer.
func (s *ConsoleSink) Info(msg string) {
	_, _ = fmt.Fprintln(s.out, msg)
}

// Error writes msg to the error writer.
func (s *ConsoleSink) Error(msg string) {
	_, _ = s.errColor.Fprintln(s.errOut, msg)
}

// LogSink forwards progress lines to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a [LogSink]. Attach attributes with logger.With before
// passing it in.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Info logs msg at info level.
func (s *LogSink) Info(msg string) {
	s.logger.Info(msg)
}

// Error logs msg at error level.
func (s *LogSink) Error(msg string) {
	s.logger.Error(msg)
}

type multiSink []Sink

// MultiSink returns a Sink that duplicates every message to all sinks, in
// order. Nil sinks are skipped.
func MultiSink(sinks ...Sink) Sink {
	ms := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			ms = append(ms, s)
		}
	}
	return ms
}

func (ms multiSink) Info(msg string) {
	for _, s := range ms {
		s.Info(msg)
	}
}

func (ms multiSink) Error(msg string) {
	for _, s := range ms {
		s.Error(msg)
	}
}
