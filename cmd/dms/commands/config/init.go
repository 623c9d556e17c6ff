package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Create a sample configuration file with sensible defaults.

The file is written to the default location unless --config points
elsewhere. Every value in the generated file can be overridden with
DMS_* environment variables.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")

	var path string
	var err error
	if configFile != "" {
		path = configFile
		err = config.InitConfigToPath(path, initForce)
	} else {
		path, err = config.InitConfig(initForce)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file created at: %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Review and customize the configuration")
	fmt.Fprintln(out, "  2. Point metadata.redis.addr at your Redis instance (or switch to badger)")
	fmt.Fprintln(out, "  3. Start the master: dms start")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Validate your changes with: dms config validate")
	return nil
}
