package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MinimalConfig(t *testing.T) {
	cfg, err := Parse([]byte(`application: https://example.com`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.Application)
	assert.False(t, cfg.Verbose)
	assert.Zero(t, cfg.Retry)
	assert.Zero(t, cfg.Timeout)
}

func TestParse_FullYAML(t *testing.T) {
	yaml := `
application: https://myapplication.mydomain.com
verbose: true
retry: 2.5
timeout: "90s"
request_timeout: 3s
retry_on_error: true
`
	cfg, err := Parse([]byte(yaml), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "https://myapplication.mydomain.com", cfg.Application)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 2500*time.Millisecond, cfg.Retry.Duration())
	assert.Equal(t, 90*time.Second, cfg.Timeout.Duration())
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout.Duration())
	assert.True(t, cfg.RetryOnError)
}

func TestParse_FullTOML(t *testing.T) {
	data := `
application = "http://localhost:8080/health"
verbose = true
retry = 5
timeout = "10m"
request_timeout = 1.5
retry_on_error = true
`
	cfg, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/health", cfg.Application)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 5*time.Second, cfg.Retry.Duration())
	assert.Equal(t, 10*time.Minute, cfg.Timeout.Duration())
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout.Duration())
	assert.True(t, cfg.RetryOnError)
}

func TestParse_EmptyIsValid(t *testing.T) {
	// application may come from flags or the environment instead
	cfg, err := Parse([]byte(``), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Application)
}

func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte(`retry: soon`), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid duration "soon"`)

	_, err = Parse([]byte(`retry = true`), FormatTOML)
	require.Error(t, err)
}

func TestParse_DurationOutOfRange(t *testing.T) {
	_, err := Parse([]byte(`timeout: 1e10`), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = Parse([]byte(`timeout = 10000000000`), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = Parse([]byte(`timeout = 1.5e12`), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	cfg, err := Parse([]byte(`timeout: 9000000000`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 9000000000*time.Second, cfg.Timeout.Duration())
}

func TestParse_NonScalarDuration(t *testing.T) {
	_, err := Parse([]byte("timeout:\n  - 1\n"), FormatYAML)
	require.Error(t, err)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"not a url", `application: myapplication`, "application: must be an http or https URL"},
		{"wrong scheme", `application: ftp://example.com`, "application: must be an http or https URL"},
		{"negative retry", `retry: -1`, "retry: cannot be negative, got -1s"},
		{"negative timeout", `timeout: -5m`, "timeout: cannot be negative"},
		{"negative request timeout", `request_timeout: -1s`, "request_timeout: cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), FormatYAML)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_InvalidSyntax(t *testing.T) {
	_, err := Parse([]byte("application: [unclosed"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = Parse([]byte("application = "), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")

	_, err = Parse([]byte(""), Format("ini"))
	require.Error(t, err)
}

func TestParse_EnvVarExpansion(t *testing.T) {
	t.Setenv("APP_HOST", "staging.example.com")

	cfg, err := Parse([]byte(`application: https://${APP_HOST}/health`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/health", cfg.Application)
}

func TestParse_EnvVarDefault(t *testing.T) {
	cfg, err := Parse([]byte(`application: https://${WAITFORAPP_TEST_UNSET_HOST:-fallback.example.com}`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "https://fallback.example.com", cfg.Application)
}

func TestParse_EnvVarMissing(t *testing.T) {
	_, err := Parse([]byte(`application: https://${WAITFORAPP_TEST_UNSET_HOST}`), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `environment variable "WAITFORAPP_TEST_UNSET_HOST" is not set`)
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "wait.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("application: https://a.example.com\n"), 0o644))

	tomlPath := filepath.Join(dir, "wait.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`application = "https://b.example.com"`), 0o644))

	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "https://a.example.com", cfg.Application)

	cfg, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "https://b.example.com", cfg.Application)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/wait.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatForPath("wait.toml"))
	assert.Equal(t, FormatTOML, FormatForPath("WAIT.TOML"))
	assert.Equal(t, FormatYAML, FormatForPath("wait.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("wait.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("wait"))
}
