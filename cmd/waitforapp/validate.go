package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/waitforapp"
)

// newValidateCmd resolves configuration without polling.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration without polling",
		Long: `Resolve flags, environment variables and the optional config file, then
validate the result without contacting the application.

It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Configuration is valid
  1 - Configuration is invalid (error details printed to stderr)

Example:
  waitforapp validate -c wait.yaml
  WAITFORAPP_APPLICATION=https://example.com waitforapp validate`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := loadSettings(cmd)
	if err != nil {
		return invalidConfig(err)
	}
	if err := s.poll.Validate(); err != nil {
		return invalidConfig(err)
	}

	source := "flags and environment"
	if s.configFile != "" {
		source = s.configFile
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Source:          %s\n", source)
	fmt.Fprintf(out, "  Application:     %s\n", s.poll.Target)
	fmt.Fprintf(out, "  Retry interval:  %s\n", s.poll.RetryInterval)
	fmt.Fprintf(out, "  Timeout:         %s\n", s.poll.Timeout)
	fmt.Fprintf(out, "  Request timeout: %s\n", s.requestTimeout)
	fmt.Fprintf(out, "  Retry on error:  %t\n", s.retryOnError)
	fmt.Fprintf(out, "  Verbose:         %t\n", s.poll.Verbose)

	return nil
}

// invalidConfig prefixes err unless it already reads as a configuration error.
func invalidConfig(err error) error {
	var cfgErr *waitforapp.ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}
	return fmt.Errorf("invalid config: %w", err)
}
