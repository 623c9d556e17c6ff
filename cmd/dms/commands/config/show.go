package config

import (
	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/internal/cli/output"
	"github.com/dmsproject/dms/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Print the effective DMS configuration after defaults and
environment overrides are applied, as YAML by default.

Examples:
  # Show default config as YAML
  dms config show

  # Show as JSON
  dms config show --output json

  # Show a specific config file
  dms config show --config /etc/dms/config.yaml`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// The config path comes from the root command's persistent flag.
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}
	if format == output.FormatJSON {
		return output.PrintJSON(cmd.OutOrStdout(), cfg)
	}
	return output.PrintYAML(cmd.OutOrStdout(), cfg)
}
