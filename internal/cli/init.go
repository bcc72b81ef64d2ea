package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unclog-go/unclog/internal/changelog"
	"github.com/unclog-go/unclog/internal/output"
)

var initEpiloguePath string

var initCmd = &cobra.Command{
	Use:   "init [ROOT_PATH]",
	Short: "Create an empty changelog directory",
	Long: `Create the changelog skeleton: an unreleased directory holding one empty
directory per category. The root must be missing or empty.

With --epilogue-path, the given file (typically an existing CHANGELOG.md)
is copied to <root>/epilogue.md and appended after all releases.`,
	Example: `  unclog init
  unclog init --epilogue-path CHANGELOG.md
  unclog init docs/changes`,
	GroupID: GroupSetup,
	Args:    maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimed(cmd, func() error { return runInit(cmd, args) })
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initEpiloguePath, "epilogue-path", "e", "", "File to copy into epilogue.md")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(rootArg(args, 0))
	if err != nil {
		return err
	}

	if err := changelog.Init(root, changelog.InitOptions{EpiloguePath: initEpiloguePath}); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Initialized changelog at %s", root))
	return nil
}
