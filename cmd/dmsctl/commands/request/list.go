package request

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	"github.com/dmsproject/dms/internal/bytesize"
	"github.com/dmsproject/dms/internal/cli/timeutil"
	"github.com/dmsproject/dms/pkg/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sync requests",
	Long: `List all sync requests known to the DMS master, oldest first.

Examples:
  # List requests as table
  dmsctl request list

  # List as JSON
  dmsctl request list -o json`,
	RunE: runList,
}

// RequestList is a list of request progress entries for table rendering.
type RequestList []*model.SyncProgress

// Headers implements TableRenderer.
func (rl RequestList) Headers() []string {
	return []string{"REQUEST ID", "STATE", "TRANSFERRED", "TOTAL", "UPDATED"}
}

// Rows implements TableRenderer.
func (rl RequestList) Rows() [][]string {
	rows := make([][]string, 0, len(rl))
	for _, p := range rl {
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

func runList(cmd *cobra.Command, args []string) error {
	client := cmdutil.GetClient()

	requests, err := client.ListSync()
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, requests, len(requests) == 0, "No sync requests found.", RequestList(requests))
}
