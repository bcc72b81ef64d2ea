package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/unclog-go/unclog/internal/changelog"
	clierrors "github.com/unclog-go/unclog/internal/errors"
	"github.com/unclog-go/unclog/internal/output"
)

var checkFile string

var checkCmd = &cobra.Command{
	Use:   "check [ROOT_PATH]",
	Short: "Validate CHANGELOG.md matches the changelog tree",
	Long: `Validate that a rendered changelog file is in sync with the tree.

This command compares the file with what 'unclog build' would produce.
Returns exit code 0 if in sync, or exit code 1 if the file is missing or
out of date. Useful as a CI step.`,
	Example: `  unclog check
  unclog check --file docs/CHANGELOG.md`,
	GroupID: GroupChangelog,
	Args:    maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimed(cmd, func() error { return runCheck(cmd, args) })
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "CHANGELOG.md", "Rendered changelog to compare against")
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(rootArg(args, 0))
	if err != nil {
		return err
	}

	c, cfg, err := loadTree(root)
	if err != nil {
		return err
	}
	expected, err := changelog.RenderString(c, cfg.RenderOptions())
	if err != nil {
		return fmt.Errorf("rendering expected markdown: %w", err)
	}

	actual, err := os.ReadFile(checkFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return clierrors.OutOfDate(checkFile)
		}
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+checkFile)
	}

	if !bytes.Equal([]byte(expected), actual) {
		return clierrors.OutOfDate(checkFile)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is in sync with %s", checkFile, root))
	return nil
}
