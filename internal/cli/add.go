package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unclog-go/unclog/internal/changelog"
	clierrors "github.com/unclog-go/unclog/internal/errors"
	"github.com/unclog-go/unclog/internal/output"
)

var (
	addSection   string
	addComponent string
	addID        string
	addForce     bool
	addPath      string
)

var addCmd = &cobra.Command{
	Use:   "add --section SECTION --component COMPONENT --id ID MESSAGE",
	Short: "Add an unreleased entry",
	Long: `Write MESSAGE to <root>/unreleased/SECTION/COMPONENT/ID.md.

SECTION is one of: breaking-changes, features, improvements, bug-fixes,
deprecations, security. Case, spaces and underscores are normalized, so
"Bug Fixes" and bug_fixes both work.`,
	Example: `  unclog add -s features -c core -i 42-faster-scans "Scans are twice as fast"
  unclog add -s bug-fixes -c cli -i 57-flag-parsing --force "Fix flag parsing"`,
	GroupID: GroupChangelog,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("expected exactly one MESSAGE argument, got %d", len(args)),
				cmd.UseLine(),
				"Quote the message so it is a single argument",
			)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimed(cmd, func() error { return runAdd(cmd, args) })
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addSection, "section", "s", "", "Category of the change (required)")
	addCmd.Flags().StringVarP(&addComponent, "component", "c", "", "Component the change belongs to (required)")
	addCmd.Flags().StringVarP(&addID, "id", "i", "", "Entry file name, usually an issue number and slug (required)")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "Overwrite an existing entry")
	addCmd.Flags().StringVarP(&addPath, "path", "p", "", "Changelog root (default: .changelog at the repository root)")
	_ = addCmd.MarkFlagRequired("section")
	_ = addCmd.MarkFlagRequired("component")
	_ = addCmd.MarkFlagRequired("id")
}

func runAdd(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(addPath)
	if err != nil {
		return err
	}
	if err := requireTree(root); err != nil {
		return err
	}
	if _, err := changelog.ParseCategory(addSection); err != nil {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	}

	path, err := changelog.AddEntry(root, changelog.NewEntry{
		Category:  addSection,
		Component: addComponent,
		ID:        addID,
		Text:      args[0],
		Force:     addForce,
	})
	if err != nil {
		return err
	}

	output.PrintPath(cmd.OutOrStdout(), "Added entry", path)
	return nil
}
