package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/unclog-go/unclog/internal/changelog"
	clierrors "github.com/unclog-go/unclog/internal/errors"
	"github.com/unclog-go/unclog/internal/output"
	"github.com/unclog-go/unclog/internal/watch"
)

var (
	buildOutput string
	buildWatch  bool
)

var buildCmd = &cobra.Command{
	Use:   "build [ROOT_PATH]",
	Short: "Render the changelog as Markdown",
	Long: `Render the changelog tree as Markdown, to stdout or to --output.

The tree is never modified. With --watch, the output is rendered again
whenever the tree changes; this needs --output unless stdout is a terminal,
in which case the screen is redrawn.`,
	Example: `  unclog build
  unclog build --output CHANGELOG.md
  unclog build --watch --output CHANGELOG.md`,
	GroupID: GroupChangelog,
	Args:    maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimed(cmd, func() error { return runBuild(cmd, args) })
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write to this file instead of stdout")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild when the changelog tree changes")
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(rootArg(args, 0))
	if err != nil {
		return err
	}

	if buildWatch {
		return watchBuild(cmd, root)
	}
	if err := buildOnce(cmd.OutOrStdout(), root); err != nil {
		return err
	}
	if buildOutput != "" {
		output.Info("Success!", "output", buildOutput)
	} else {
		output.Info("Success!")
	}
	return nil
}

// buildOnce scans root and writes the rendered changelog to buildOutput or stdout.
func buildOnce(stdout io.Writer, root string) error {
	c, cfg, err := loadTree(root)
	if err != nil {
		return err
	}

	text, err := changelog.RenderString(c, cfg.RenderOptions())
	if err != nil {
		return err
	}

	if buildOutput == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(buildOutput, []byte(text), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+buildOutput)
	}
	return nil
}

func watchBuild(cmd *cobra.Command, root string) error {
	stdout := cmd.OutOrStdout()
	if buildOutput == "" && !output.IsTerminal(stdout) {
		return clierrors.InvalidFlagCombination("--watch without --output",
			"Pass --output FILE, or run in a terminal to redraw the screen")
	}
	if err := requireTree(root); err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	var exclude []string
	if buildOutput != "" {
		exclude = append(exclude, buildOutput)
	}
	w, err := watch.New(root, watch.Options{
		Debounce: cfg.WatchDebounce,
		Ignore:   cfg.Ignore,
		Exclude:  exclude,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	output.Info("Watching for changes", "root", root)
	return w.Run(ctx, func() error {
		if buildOutput == "" {
			output.ClearScreen(stdout)
		}
		if err := buildOnce(stdout, root); err != nil {
			return err
		}
		if buildOutput != "" {
			output.Info("Rebuilt", "output", buildOutput)
		}
		return nil
	})
}

// commandContext returns cmd's context, or a background context when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
