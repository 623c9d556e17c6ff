package worker

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	"github.com/dmsproject/dms/internal/cli/timeutil"
	"github.com/dmsproject/dms/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered workers",
	Long: `List all workers registered with the DMS master, in registration
order.

Examples:
  # List workers as table
  dmsctl worker list

  # List as JSON
  dmsctl worker list -o json`,
	RunE: runList,
}

// WorkerList is a list of workers for table rendering.
type WorkerList []apiclient.Worker

// Headers implements TableRenderer.
func (wl WorkerList) Headers() []string {
	return []string{"WORKER ID", "STATUS", "ENDPOINTS", "STORAGE PATHS", "LAST SEEN"}
}

// Rows implements TableRenderer.
func (wl WorkerList) Rows() [][]string {
	rows := make([][]string, 0, len(wl))
	for _, w := range wl {
		if w.Heartbeat == nil {
			continue
		}
		addresses := make([]string, 0, len(w.Heartbeat.DataPlaneEndpoints))
		for _, ep := range w.Heartbeat.DataPlaneEndpoints {
			addresses = append(addresses, ep.Address)
		}
		seen := "-"
		if !w.Seen.IsZero() {
			seen = w.Seen.Local().Format(timeutil.LocalTimeFormat)
		}
		rows = append(rows, []string{
			w.Heartbeat.WorkerID,
			string(w.Heartbeat.Status),
			cmdutil.EmptyOr(strings.Join(addresses, ", "), "-"),
			cmdutil.EmptyOr(strings.Join(w.Heartbeat.StoragePaths, ", "), "-"),
			seen,
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client := cmdutil.GetClient()

	workers, err := client.ListWorkers()
	if err != nil {
		return fmt.Errorf("failed to list workers: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, workers, len(workers) == 0, "No workers registered.", WorkerList(workers))
}
