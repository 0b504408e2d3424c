package waitforapp

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code int
		want Readiness
	}{
		{100, ReadinessReady},
		{200, ReadinessReady},
		{204, ReadinessReady},
		{301, ReadinessReady},
		{399, ReadinessReady},
		{400, ReadinessNotReady},
		{404, ReadinessNotReady},
		{500, ReadinessNotReady},
		{503, ReadinessNotReady},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStatus(tt.code), "code %d", tt.code)
	}
}

func TestReadiness_String(t *testing.T) {
	assert.Equal(t, "ready", ReadinessReady.String())
	assert.Equal(t, "not_ready", ReadinessNotReady.String())
}

func TestNewPollConfig(t *testing.T) {
	cfg := NewPollConfig(defaultURL)
	assert.Equal(t, defaultURL, cfg.Target)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultRetryInterval, cfg.RetryInterval)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestPollConfig_Validate(t *testing.T) {
	assert.NoError(t, PollConfig{Target: defaultURL, RetryInterval: time.Millisecond, Timeout: time.Millisecond}.Validate())

	err := PollConfig{Target: defaultURL, RetryInterval: time.Second, Timeout: -1500 * time.Millisecond}.Validate()
	assert.EqualError(t, err, "invalid configuration: timeout must be positive, got -1.5s")

	err = PollConfig{Target: defaultURL, Timeout: time.Second}.Validate()
	assert.EqualError(t, err, "invalid configuration: retry interval must be positive, got 0s")
}

func TestConsoleSink(t *testing.T) {
	var out, errOut bytes.Buffer
	sink := NewConsoleSink(&out, &errOut)

	sink.Info("progress")
	sink.Error("failure")

	assert.Equal(t, "progress\n", out.String())
	assert.Contains(t, errOut.String(), "failure")
	assert.NotContains(t, out.String(), "failure")
}

func TestDiscardSink(t *testing.T) {
	DiscardSink.Info("ignored")
	DiscardSink.Error("ignored")
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("target", defaultURL)
	sink := NewLogSink(logger)

	sink.Info("progress")
	sink.Error("failure")

	out := buf.String()
	assert.Contains(t, out, `level=INFO msg=progress target=`+defaultURL)
	assert.Contains(t, out, `level=ERROR msg=failure target=`+defaultURL)
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	sink := MultiSink(a, nil, b)

	sink.Info("progress")
	sink.Error("failure")

	for _, s := range []*recordingSink{a, b} {
		assert.Equal(t, []string{"progress"}, s.infos)
		assert.Equal(t, []string{"failure"}, s.errors)
	}
}
