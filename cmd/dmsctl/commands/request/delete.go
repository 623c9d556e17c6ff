package request

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <request-id>",
	Short: "Delete a sync request",
	Long: `Delete a sync request from the DMS master.

The request's progress, results, and pending assignments are dropped.
Deleting an unknown id succeeds. You will be prompted for confirmation
unless --force is specified.

Examples:
  # Delete request with confirmation
  dmsctl request delete r-42

  # Delete request without confirmation
  dmsctl request delete r-42 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	requestID := args[0]

	client := cmdutil.GetClient()

	return cmdutil.RunDeleteWithConfirmation("Sync request", requestID, deleteForce, func() error {
		if _, err := client.DeleteSync(requestID); err != nil {
			return fmt.Errorf("failed to delete request: %w", err)
		}
		return nil
	})
}
