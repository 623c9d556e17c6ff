// Package request implements sync request management commands for dmsctl.
package request

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for sync request management.
var Cmd = &cobra.Command{
	Use:   "request",
	Short: "Sync request management",
	Long: `Manage sync requests on the DMS master.

Request commands allow you to submit transfers, track their progress,
inspect per-endpoint results, and requeue failed work.

Examples:
  # Submit a sync request
  dmsctl request submit --source /data/src --destination /data/dst

  # List all requests
  dmsctl request list

  # Show one request
  dmsctl request get r-42

  # Show per-endpoint results
  dmsctl request results r-42

  # Requeue a failed request on a specific worker
  dmsctl request reassign r-42 worker-2

  # Forget a request
  dmsctl request delete r-42`,
}

func init() {
	Cmd.AddCommand(submitCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(resultsCmd)
	Cmd.AddCommand(reassignCmd)
	Cmd.AddCommand(deleteCmd)
}
