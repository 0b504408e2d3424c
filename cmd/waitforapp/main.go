// Package main is the entry point for the waitforapp CLI.
//
// waitforapp blocks until an application answers HTTP requests with a status
// below 400, so deployment pipelines can wait for a service behind a reverse
// proxy before moving on.
//
// Usage:
//
//	waitforapp -a https://myapplication.mydomain.com -v  # Wait for the application
//	waitforapp validate -c wait.yaml                     # Validate configuration
//	waitforapp version                                   # Show version info
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const rootLong = `waitforapp polls an application until it is ready to serve traffic.

Any HTTP response below 400 counts as ready; 400 and above is treated as a
temporary failure and retried every --retry seconds until --timeout seconds
have passed since the first attempt.

Every flag can also be set through the environment (WAITFORAPP_APPLICATION,
WAITFORAPP_RETRY, ...) or a YAML/TOML file passed with --config.
Precedence: flag > environment > config file > default.

Exit codes:
  0 - Application is ready
  1 - Invalid configuration, timeout, or request failure

Example:
  waitforapp -a https://myapplication.mydomain.com -v -r 5 -t 600`

// newRootCmd builds the command tree. A fresh tree per execution keeps flag
// state from leaking between runs.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "waitforapp",
		Short:         "Wait for an application to become ready",
		Long:          rootLong,
		Args:          cobra.NoArgs,
		RunE:          runWait,
		SilenceErrors: true,
	}

	addPollFlags(cmd.PersistentFlags())

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newVersionCmd prints version information.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of this waitforapp binary.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "waitforapp %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, out, errOut io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	if err := cmd.Execute(); err != nil {
		// failures already written to the sink are not repeated
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
