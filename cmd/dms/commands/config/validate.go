package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Check the DMS configuration file for syntax errors, missing
required fields, and invalid values. Settings that are legal but likely
unintended are reported as warnings.

Examples:
  # Validate the default config
  dms config validate

  # Validate a specific config file
  dms config validate --config /etc/dms/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// The config path comes from the root command's persistent flag.
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
	fmt.Fprintln(out, "Validation: OK")

	var warnings []string
	if cfg.Metadata.TTLDays <= 0 {
		warnings = append(warnings, "metadata.ttl_days is 0 - completed requests never expire")
	}
	if cfg.Metadata.Backend == "redis" && cfg.Metadata.Redis.Password == "" {
		warnings = append(warnings, "Redis password not configured - AUTH is disabled")
	}
	if cfg.Scheduler.WorkerStaleAfter <= 0 {
		warnings = append(warnings, "scheduler.worker_stale_after is 0 - stale workers are never filtered")
	}
	if len(warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	fmt.Fprintln(out, "\nConfiguration summary:")
	fmt.Fprintf(out, "  Metadata backend:  %s\n", cfg.Metadata.Backend)
	fmt.Fprintf(out, "  API port:          %d\n", cfg.Server.Port)
	fmt.Fprintf(out, "  Log level:         %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Scheduler policy:  %s\n", cfg.Scheduler.Policy)
	return nil
}
