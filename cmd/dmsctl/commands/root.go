// Package commands implements the CLI commands for the dmsctl client.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	requestcmd "github.com/dmsproject/dms/cmd/dmsctl/commands/request"
	workercmd "github.com/dmsproject/dms/cmd/dmsctl/commands/worker"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetBuildInfo records the version stamped into the binary at link time.
func SetBuildInfo(version, commit, date string) {
	buildVersion, buildCommit, buildDate = version, commit, date
}

var rootCmd = &cobra.Command{
	Use:   "dmsctl",
	Short: "DMS Control - Remote management client",
	Long: `dmsctl is the command-line client for managing a DMS master remotely.

Use this tool to submit and track sync requests and to inspect the
worker fleet through the DMS REST API.

The master address is resolved from --server, then the DMS_SERVER
environment variable, then http://localhost:8000.

Use "dmsctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Subcommand packages read global flags through cmdutil.Flags.
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Yes, _ = cmd.Flags().GetBool("yes")
	},
}

// Execute runs the root command; called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("server", "", "Master URL (overrides DMS_SERVER)")
	pf.StringP("output", "o", "table", "Output format (table|json|yaml)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.BoolP("yes", "y", false, "Skip confirmation prompts")

	rootCmd.AddCommand(versionCmd, statusCmd, requestcmd.Cmd, workercmd.Cmd, completionCmd)

	// Our own completion command replaces the built-in one.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
