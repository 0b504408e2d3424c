package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jpalmerr/waitforapp"
	"github.com/jpalmerr/waitforapp/config"
)

const envPrefix = "WAITFORAPP"

// flag names double as viper keys; env vars are WAITFORAPP_<KEY> with
// dashes replaced by underscores
const (
	keyApplication    = "application"
	keyVerbose        = "verbose"
	keyRetry          = "retry"
	keyTimeout        = "timeout"
	keyConfig         = "config"
	keyRequestTimeout = "request-timeout"
	keyRetryOnError   = "retry-on-error"
	keyLogFormat      = "log-format"
)

const (
	logFormatNone = "none"
	logFormatText = "text"
	logFormatJSON = "json"
)

// settings is the fully resolved CLI configuration.
type settings struct {
	poll           waitforapp.PollConfig
	requestTimeout time.Duration
	retryOnError   bool
	logFormat      string
	configFile     string
}

// addPollFlags registers the polling flags shared by every subcommand.
func addPollFlags(flags *pflag.FlagSet) {
	flags.StringP(keyApplication, "a", "", "Client-facing URL of the application, e.g. https://myapplication.mydomain.com (required)")
	flags.BoolP(keyVerbose, "v", false, "Run with verbose logging")
	flags.Float64P(keyRetry, "r", waitforapp.DefaultRetryInterval.Seconds(), "Retry interval in seconds")
	flags.Float64P(keyTimeout, "t", waitforapp.DefaultTimeout.Seconds(), "Timeout in seconds")
	flags.StringP(keyConfig, "c", "", "Path to a YAML or TOML config file")
	flags.Float64(keyRequestTimeout, 10, "Per-request timeout in seconds")
	flags.Bool(keyRetryOnError, false, "Treat connection errors as not ready instead of failing")
	flags.String(keyLogFormat, logFormatNone, "Structured log output on stderr: none, text or json")
}

// loadSettings resolves flags, environment variables and the optional config
// file into settings. Precedence: flag > environment > config file > default.
func loadSettings(cmd *cobra.Command) (settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return settings{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	s := settings{configFile: v.GetString(keyConfig)}
	if s.configFile != "" {
		cfg, err := config.Load(s.configFile)
		if err != nil {
			return settings{}, fmt.Errorf("failed to load config: %w", err)
		}
		applyFileDefaults(v, cfg)
	}

	s.poll.Target = strings.TrimSpace(v.GetString(keyApplication))
	if s.poll.Target == "" {
		return settings{}, &waitforapp.ConfigError{
			Field:  keyApplication,
			Reason: "is required (--application, " + envPrefix + "_APPLICATION or config file)",
		}
	}
	s.poll.Verbose = v.GetBool(keyVerbose)

	var err error
	if s.poll.RetryInterval, err = positiveSeconds(v, keyRetry); err != nil {
		return settings{}, err
	}
	if s.poll.Timeout, err = positiveSeconds(v, keyTimeout); err != nil {
		return settings{}, err
	}
	if s.requestTimeout, err = positiveSeconds(v, keyRequestTimeout); err != nil {
		return settings{}, err
	}
	s.retryOnError = v.GetBool(keyRetryOnError)

	s.logFormat = strings.ToLower(v.GetString(keyLogFormat))
	switch s.logFormat {
	case logFormatNone, logFormatText, logFormatJSON:
	default:
		return settings{}, &waitforapp.ConfigError{
			Field:  keyLogFormat,
			Reason: fmt.Sprintf("must be none, text or json, got %q", s.logFormat),
		}
	}

	return s, nil
}

// applyFileDefaults makes config file values the fallback for unset flags
// and environment variables.
func applyFileDefaults(v *viper.Viper, cfg *config.Config) {
	pc := cfg.ToPollConfig()
	if pc.Target != "" {
		v.SetDefault(keyApplication, pc.Target)
	}
	v.SetDefault(keyVerbose, pc.Verbose)
	v.SetDefault(keyRetry, pc.RetryInterval.Seconds())
	v.SetDefault(keyTimeout, pc.Timeout.Seconds())
	if cfg.RequestTimeout > 0 {
		v.SetDefault(keyRequestTimeout, cfg.RequestTimeout.Duration().Seconds())
	}
	if cfg.RetryOnError {
		v.SetDefault(keyRetryOnError, true)
	}
}

// maxSeconds is the largest number of seconds a time.Duration can hold.
const maxSeconds = math.MaxInt64 / float64(time.Second)

// positiveSeconds reads key as a number of seconds and rejects values that
// are not strictly positive or do not fit in a time.Duration.
func positiveSeconds(v *viper.Viper, key string) (time.Duration, error) {
	secs := v.GetFloat64(key)
	if !(secs > 0) {
		return 0, &waitforapp.ConfigError{
			Field:  key,
			Reason: fmt.Sprintf("must be a positive number of seconds, got %q", v.GetString(key)),
		}
	}
	ns := math.Round(secs * float64(time.Second))
	if ns >= math.MaxInt64 {
		return 0, &waitforapp.ConfigError{
			Field:  key,
			Reason: fmt.Sprintf("must be at most %.0f seconds, got %q", math.Floor(maxSeconds), v.GetString(key)),
		}
	}
	return time.Duration(ns), nil
}
