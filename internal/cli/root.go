package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deprank/pkg/buildinfo"
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}

// Run executes the deprank CLI with args (excluding the program name).
//
// The returned error carries a code from package errors, except for
// context.Canceled, which is returned unchanged so the caller can exit
// with the interrupt status.
//
// Logging:
//   - Default: info level, written to stderr
//   - With --verbose (-v): debug level
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var verbose bool

	c := New(stdout, stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)
		c.Logger.Debug("starting", "build", buildinfo.String())
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	err := root.ExecuteContext(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	return classifyError(err)
}
