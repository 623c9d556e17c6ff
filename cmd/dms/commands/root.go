// Package commands implements the CLI commands for the dms master server.
package commands

import (
	"github.com/spf13/cobra"

	configcmd "github.com/dmsproject/dms/cmd/dms/commands/config"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"

	cfgFile string
)

// SetBuildInfo records the version stamped into the binary at link time.
func SetBuildInfo(version, commit, date string) {
	buildVersion, buildCommit, buildDate = version, commit, date
}

var rootCmd = &cobra.Command{
	Use:   "dms",
	Short: "DMS - Distributed file synchronization master",
	Long: `DMS is the master (control plane) of a distributed file synchronization
system. It accepts sync requests over HTTP, schedules them across registered
workers, tracks per-endpoint progress, and records everything in a durable
metadata store.

Workers are separate processes that register through heartbeats and poll
for assignments; this binary never touches file data itself.

Use "dms [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command; called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: $XDG_CONFIG_HOME/dms/config.yaml)")

	rootCmd.AddCommand(versionCmd, startCmd, configcmd.Cmd, completionCmd)

	// Our own completion command replaces the built-in one.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}
