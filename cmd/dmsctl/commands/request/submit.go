package request

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	"github.com/dmsproject/dms/pkg/model"
)

var (
	submitID          string
	submitSource      string
	submitDestination string
	submitFiles       string
	submitChunkSizeMB int
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a sync request",
	Long: `Submit a new sync request to the DMS master.

The request is queued and dispatched to eligible workers. Without
--files the source path is transferred as a single unit; with --files
each listed file becomes its own assignment.

Examples:
  # Sync a directory
  dmsctl request submit --source /data/src --destination /backup/dst

  # Sync specific files with a custom id
  dmsctl request submit --id nightly-42 --source /data/src --destination /backup/dst \
    --files a.bin,b.bin

  # Sync with a larger chunk size
  dmsctl request submit --source /data/src --destination /backup/dst --chunk-size-mb 256`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitID, "id", "", "Request ID (generated if not set)")
	submitCmd.Flags().StringVar(&submitSource, "source", "", "Source path (required)")
	submitCmd.Flags().StringVar(&submitDestination, "destination", "", "Destination path (required)")
	submitCmd.Flags().StringVar(&submitFiles, "files", "", "Comma-separated file list (default: whole source path)")
	submitCmd.Flags().IntVar(&submitChunkSizeMB, "chunk-size-mb", 0, "Chunk size in MB (default: server-side default)")
	_ = submitCmd.MarkFlagRequired("source")
	_ = submitCmd.MarkFlagRequired("destination")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	client := cmdutil.GetClient()

	id := submitID
	if id == "" {
		id = uuid.NewString()
	}

	req := &model.SyncRequest{
		RequestID:       id,
		SourcePath:      submitSource,
		DestinationPath: submitDestination,
		FileList:        cmdutil.ParseCommaSeparatedList(submitFiles),
		ChunkSizeMB:     submitChunkSizeMB,
	}

	resp, err := client.SubmitSync(req)
	if err != nil {
		return fmt.Errorf("failed to submit request: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, resp,
		fmt.Sprintf("Sync request '%s' submitted successfully", resp.RequestID))
}
