package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unclog-go/unclog/internal/config"
	"github.com/unclog-go/unclog/internal/output"
)

var configMigrateDryRun bool

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Inspect and migrate configuration",
	GroupID: GroupSetup,
}

var configShowCmd = &cobra.Command{
	Use:   "show [ROOT_PATH]",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after merging defaults, the user config,
<root>/config.yml (or the legacy config.json) and UNCLOG_* variables.`,
	Args: maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot(rootArg(args, 0))
		if err != nil {
			return err
		}
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# sources: %v\n%s", cfg.Sources, data)
		return nil
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate [ROOT_PATH]",
	Short: "Convert the legacy config.json to config.yml",
	Long: `Convert <root>/config.json to <root>/config.yml. The JSON file is kept
as the hidden backup <root>/.config.json.bak.`,
	Args: maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot(rootArg(args, 0))
		if err != nil {
			return err
		}
		result, err := config.MigrateProjectConfig(root, configMigrateDryRun)
		if err != nil {
			return err
		}
		if result.Success && !result.DryRun {
			output.PrintSuccess(cmd.OutOrStdout(), result.Message)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configMigrateCmd)
	configMigrateCmd.Flags().BoolVar(&configMigrateDryRun, "dry-run", false, "Report what would change without writing")
}
