// Package config implements the configuration management subcommands.
package config

import "github.com/spf13/cobra"

// Cmd groups the configuration subcommands under "dms config".
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage the DMS master configuration file.

Subcommands:
  init      Write a commented sample configuration
  validate  Check a configuration file for errors
  show      Print the effective configuration
  schema    Emit a JSON schema for editors and validation`,
}

func init() {
	Cmd.AddCommand(initCmd, validateCmd, showCmd, schemaCmd)
}
