// Package cli implements the unclog command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	clierrors "github.com/unclog-go/unclog/internal/errors"
	"github.com/unclog-go/unclog/internal/git"
	"github.com/unclog-go/unclog/internal/lifecycle"
	"github.com/unclog-go/unclog/internal/output"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupSetup     = "setup"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "unclog",
	Short: "Build changelogs from a directory of entry files",
	Long: `unclog keeps a changelog as a tree of small files so that concurrent
branches never conflict on CHANGELOG.md.

Entries live in <root>/unreleased/<category>/<component>/<id>.md and are
moved into <root>/<version>/ on release. The root defaults to .changelog
at the top of the enclosing git repository.`,
	Example: `  # Create a changelog skeleton
  unclog init

  # Record a change
  unclog add -s features -c core -i 42-faster-scans "Scans are twice as fast"

  # Render CHANGELOG.md
  unclog build --output CHANGELOG.md

  # Cut a release
  unclog release v1.2.0`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetupLogging(verbose)
		output.SetOutput(cmd.ErrOrStderr())
		if verbose {
			git.SetDebugLogger(output.Debugf)
		} else {
			git.SetDebugLogger(nil)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the root command. Failures are logged as a single line
// followed by any remediation hints; the returned error carries the
// classification used by ExitCode.
func Execute() error {
	return execute(context.Background(), os.Args[1:])
}

func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	cliErr := classify(err)
	output.Error("Failed with error", "err", cliErr.Message)
	fmt.Fprint(rootCmd.ErrOrStderr(), clierrors.FormatHints(cliErr))
	return cliErr
}

func classify(err error) *clierrors.CLIError {
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "required flag") {
		return clierrors.NewArgumentError(msg, "Run 'unclog --help' for usage")
	}
	return clierrors.Classify(err)
}

// runTimed wraps a command body so its duration is logged in verbose mode.
func runTimed(cmd *cobra.Command, fn func() error) error {
	return lifecycle.Run(lifecycle.LogHandler{}, cmd.Name(), fn)
}

// maxArgs is cobra.MaximumNArgs reported as an argument error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
		}
		return nil
	}
}
