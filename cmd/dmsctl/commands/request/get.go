package request

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	"github.com/dmsproject/dms/internal/bytesize"
	"github.com/dmsproject/dms/internal/cli/timeutil"
	"github.com/dmsproject/dms/pkg/model"
)

var getCmd = &cobra.Command{
	Use:   "get <request-id>",
	Short: "Get sync request progress",
	Long: `Get detailed progress for one sync request.

The detail rows show the per-endpoint status: a state name while the
endpoint works, or the failure message reported by the worker.

Examples:
  # Get request progress as table
  dmsctl request get r-42

  # Get as JSON
  dmsctl request get r-42 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// SingleRequestList wraps a single progress entry for table rendering.
type SingleRequestList []*model.SyncProgress

// Headers implements TableRenderer.
func (rl SingleRequestList) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (rl SingleRequestList) Rows() [][]string {
	if len(rl) == 0 {
		return nil
	}
	p := rl[0]

	rows := [][]string{
		{"Request ID", p.RequestID},
		{"State", string(p.State)},
		{"Transferred", bytesize.ByteSize(p.TransferredBytes).String()},
		{"Total", bytesize.ByteSize(p.TotalBytes).String()},
		{"Started", p.StartedAt.Local().Format(timeutil.LocalTimeFormat)},
		{"Updated", p.UpdatedAt.Local().Format(timeutil.LocalTimeFormat)},
	}

	keys := make([]string, 0, len(p.Detail))
	for k := range p.Detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, []string{fmt.Sprintf("Detail[%s]", k), p.Detail[k]})
	}

	return rows
}

func runGet(cmd *cobra.Command, args []string) error {
	requestID := args[0]

	client := cmdutil.GetClient()

	progress, err := client.GetSync(requestID)
	if err != nil {
		return fmt.Errorf("failed to get request: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, progress, SingleRequestList{progress})
}
