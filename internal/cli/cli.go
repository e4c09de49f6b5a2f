// Package cli implements the deprank command-line interface.
//
// # Commands
//
//   - analyze: scan a tree for project manifests, rank the projects and
//     print the report, optionally writing DOT, an image and JSON
//   - render: render an existing DOT or JSON graph to an image
//   - browse: page through the ranked projects in an interactive view
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and retrieved with loggerFromContext.
//
// # Errors
//
// Errors returned from [Run] carry a code from package errors, so the
// message always states which kind of failure ended the run.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deprank/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "deprank"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // Report output
	Err    io.Writer // Spinner and status output
}

// New creates a new CLI instance. Logs go to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		Out:    out,
		Err:    errw,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Rank the projects of a .NET source tree by their references",
		Long: `deprank scans a directory tree for MSBuild project files, builds the
graph of project references, and assigns every project a rank: the length of
the longest reference chain from it down to a project with no references.

Listing projects by ascending rank gives a valid build order.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.SetFlagErrorFunc(flagError)

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}
