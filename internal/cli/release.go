package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unclog-go/unclog/internal/changelog"
	clierrors "github.com/unclog-go/unclog/internal/errors"
	"github.com/unclog-go/unclog/internal/output"
)

var releaseCmd = &cobra.Command{
	Use:   "release VERSION [ROOT_PATH]",
	Short: "Move unreleased entries into a new release",
	Long: `Move everything in <root>/unreleased into <root>/VERSION and recreate an
empty unreleased skeleton.

Nothing is changed unless the whole tree is valid, there is at least one
unreleased entry, and VERSION (or an equivalent spelling such as 1.2.0 for
v1.2.0) has not been released yet.`,
	Example: `  unclog release v1.2.0
  unclog release 2024.06.1 docs/changes`,
	GroupID: GroupChangelog,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return clierrors.MissingVersion()
		}
		return maxArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimed(cmd, func() error { return runRelease(cmd, args) })
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	version := args[0]
	root, err := resolveRoot(rootArg(args, 1))
	if err != nil {
		return err
	}
	if err := requireTree(root); err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	result, err := changelog.Release(root, version, changelog.ReleaseOptions{Scan: cfg.ScanOptions()})
	output.Debug("Release finished", "version", version, "state", result.State, "moved", result.Moved)
	if err != nil {
		if result.Moved {
			output.PrintWarning(cmd.ErrOrStderr(),
				fmt.Sprintf("Entries were moved to %s but %s needs repair", result.Path, changelog.UnreleasedDir))
		}
		return err
	}

	output.PrintPath(cmd.OutOrStdout(),
		fmt.Sprintf("Released %s with %d %s", version, result.Entries, plural(result.Entries, "entry", "entries")),
		result.Path)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
