package request

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
)

var reassignCmd = &cobra.Command{
	Use:   "reassign <request-id> <worker-id>",
	Short: "Requeue a request on a specific worker",
	Long: `Requeue a QUEUED or FAILED sync request pinned to the given worker.

The request is reset to QUEUED and scheduled against the named worker
only. Requests that are already in progress or completed cannot be
reassigned.

Examples:
  # Requeue a failed request on worker-2
  dmsctl request reassign r-42 worker-2`,
	Args: cobra.ExactArgs(2),
	RunE: runReassign,
}

func runReassign(cmd *cobra.Command, args []string) error {
	requestID := args[0]
	workerID := args[1]

	client := cmdutil.GetClient()

	resp, err := client.ReassignSync(requestID, workerID)
	if err != nil {
		return fmt.Errorf("failed to reassign request: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, resp,
		fmt.Sprintf("Sync request '%s' requeued on worker '%s'", resp.RequestID, resp.WorkerID))
}
