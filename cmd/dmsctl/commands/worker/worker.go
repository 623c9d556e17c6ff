// Package worker implements worker fleet inspection commands for dmsctl.
package worker

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for worker inspection.
var Cmd = &cobra.Command{
	Use:   "worker",
	Short: "Worker fleet inspection",
	Long: `Inspect the worker fleet registered with the DMS master.

Workers register themselves through heartbeats; these commands show
what the master currently knows about them.

Examples:
  # List all registered workers
  dmsctl worker list

  # Show the requests assigned to a worker
  dmsctl worker requests worker-2`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(requestsCmd)
}
