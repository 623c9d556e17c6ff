package request

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	"github.com/dmsproject/dms/internal/cli/timeutil"
	"github.com/dmsproject/dms/pkg/model"
)

var resultsCmd = &cobra.Command{
	Use:   "results <request-id>",
	Short: "Show per-endpoint results",
	Long: `Show the results workers reported for one sync request, in the
order they arrived.

Examples:
  # Show results as table
  dmsctl request results r-42

  # Show as JSON
  dmsctl request results r-42 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runResults,
}

// ResultList is a list of sync results for table rendering.
type ResultList []*model.SyncResult

// Headers implements TableRenderer.
func (rl ResultList) Headers() []string {
	return []string{"WORKER", "ENDPOINT", "SUCCESS", "MESSAGE", "COMPLETED"}
}

// Rows implements TableRenderer.
func (rl ResultList) Rows() [][]string {
	rows := make([][]string, 0, len(rl))
	for _, r := range rl {
		completed := "-"
		if !r.CompletedAt.IsZero() {
			completed = r.CompletedAt.Local().Format(timeutil.LocalTimeFormat)
		}
		rows = append(rows, []string{
			r.WorkerID,
			cmdutil.EmptyOr(r.DataPlaneAddress, "-"),
			cmdutil.BoolToYesNo(r.Success),
			cmdutil.EmptyOr(r.Message, "-"),
			completed,
		})
	}
	return rows
}

func runResults(cmd *cobra.Command, args []string) error {
	requestID := args[0]

	client := cmdutil.GetClient()

	results, err := client.SyncResults(requestID)
	if err != nil {
		return fmt.Errorf("failed to get results: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, results, len(results) == 0, "No results reported yet.", ResultList(results))
}
