package worker

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	"github.com/dmsproject/dms/internal/bytesize"
	"github.com/dmsproject/dms/internal/cli/timeutil"
	"github.com/dmsproject/dms/pkg/model"
)

var requestsCmd = &cobra.Command{
	Use:   "requests <worker-id>",
	Short: "Show requests assigned to a worker",
	Long: `Show the sync requests with an active assignment on the given
worker.

Examples:
  # Show assigned requests as table
  dmsctl worker requests worker-2

  # Show as JSON
  dmsctl worker requests worker-2 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runRequests,
}

// AssignedList is a list of assigned request progress entries for table rendering.
type AssignedList []*model.SyncProgress

// Headers implements TableRenderer.
func (al AssignedList) Headers() []string {
	return []string{"REQUEST ID", "STATE", "TRANSFERRED", "TOTAL", "UPDATED"}
}

// Rows implements TableRenderer.
func (al AssignedList) Rows() [][]string {
	rows := make([][]string, 0, len(al))
	for _, p := range al {
		rows = append(rows, []string{
			p.RequestID,
			string(p.State),
			bytesize.ByteSize(p.TransferredBytes).String(),
			bytesize.ByteSize(p.TotalBytes).String(),
			p.UpdatedAt.Local().Format(timeutil.LocalTimeFormat),
		})
	}
	return rows
}

func runRequests(cmd *cobra.Command, args []string) error {
	workerID := args[0]

	client := cmdutil.GetClient()

	requests, err := client.WorkerRequests(workerID)
	if err != nil {
		return fmt.Errorf("failed to get worker requests: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, requests, len(requests) == 0, "No requests assigned.", AssignedList(requests))
}
