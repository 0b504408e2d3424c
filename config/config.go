// Package config provides config-file parsing for the waitforapp CLI.
//
// A config file is an alternative to flags and environment variables, useful
// when the same readiness check is shared across pipelines. YAML is the
// default format; files ending in .toml are parsed as TOML.
//
// Example configuration:
//
//	application: https://${APP_HOST:-myapplication.mydomain.com}
//	verbose: true
//	retry: 5          # seconds, or a duration string like "5s"
//	timeout: 10m
//	request_timeout: 3s
//	retry_on_error: true
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Config is the root configuration structure.
//
// It maps directly to the config file. Use [Load] or [Parse] to create one.
// Zero values mean "not set"; the CLI then falls back to flags, environment
// variables or built-in defaults.
type Config struct {
	// Application is the client-facing URL to wait for.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Application string `yaml:"application" toml:"application" validate:"omitempty,http_url"`

	// Verbose enables progress output.
	Verbose bool `yaml:"verbose" toml:"verbose"`

	// Retry is the interval between attempts.
	Retry Duration `yaml:"retry" toml:"retry" validate:"gte=0"`

	// Timeout is the total time budget.
	Timeout Duration `yaml:"timeout" toml:"timeout" validate:"gte=0"`

	// RequestTimeout bounds each individual request.
	RequestTimeout Duration `yaml:"request_timeout" toml:"request_timeout" validate:"gte=0"`

	// RetryOnError treats transport errors as "not ready".
	RetryOnError bool `yaml:"retry_on_error" toml:"retry_on_error"`
}

// Duration wraps time.Duration for config decoding.
//
// A bare number is read as seconds, matching the CLI flags; a string is
// parsed with time.ParseDuration, falling back to seconds.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a number or string, got %v", node.Kind)
	}
	parsed, err := parseDuration(node.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler for Duration.
func (d *Duration) UnmarshalTOML(v any) error {
	var parsed time.Duration
	switch val := v.(type) {
	case int64:
		var err error
		if parsed, err = secondsToDuration(float64(val)); err != nil {
			return err
		}
	case float64:
		var err error
		if parsed, err = secondsToDuration(val); err != nil {
			return err
		}
	case string:
		var err error
		if parsed, err = parseDuration(val); err != nil {
			return err
		}
	default:
		return fmt.Errorf("duration must be a number or string, got %T", v)
	}
	*d = Duration(parsed)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return secondsToDuration(secs)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return parsed, nil
}

// secondsToDuration converts a number of seconds, rejecting values that do
// not fit in a time.Duration.
func secondsToDuration(secs float64) (time.Duration, error) {
	ns := math.Round(secs * float64(time.Second))
	if math.IsNaN(ns) || ns >= math.MaxInt64 || ns <= math.MinInt64 {
		return 0, fmt.Errorf("duration %v seconds is out of range", secs)
	}
	return time.Duration(ns), nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		varName := submatches[1]
		hasDefault := submatches[2] != ""
		defaultVal := submatches[3]

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// FormatForPath picks the config format from a file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses a config file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, FormatForPath(path))
}

// Parse parses config data in the given format, expands environment
// variables in Application and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if cfg.Application != "" {
		expanded, err := expandEnvVars(cfg.Application)
		if err != nil {
			return nil, fmt.Errorf("application: %w", err)
		}
		cfg.Application = expanded
	}

	if err := validateStruct(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
