package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/cmd/dmsctl/cmdutil"
	"github.com/dmsproject/dms/internal/cli/output"
	"github.com/dmsproject/dms/internal/cli/timeutil"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show master status",
	Long: `Probe the connected DMS master's health endpoint and display its
status, uptime, and metadata store reachability.

Examples:
  # Check status of connected master
  dmsctl status

  # Output as JSON
  dmsctl status -o json`,
	RunE: runStatus,
}

// ServerStatus is the status document shown by "dmsctl status".
type ServerStatus struct {
	Server    string `json:"server" yaml:"server"`
	Status    string `json:"status" yaml:"status"`
	Healthy   bool   `json:"healthy" yaml:"healthy"`
	Service   string `json:"service,omitempty" yaml:"service,omitempty"`
	StartedAt string `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := cmdutil.GetClient()

	// An unreachable master is a report, not a command failure.
	status := ServerStatus{
		Server: client.BaseURL(),
		Status: "unreachable",
	}
	if report, err := client.Health(); err != nil {
		status.Error = err.Error()
	} else {
		status.Status = report.Status
		status.Healthy = report.Status == "ok"
		status.Service = report.Data.Service
		status.StartedAt = report.Data.StartedAt
		status.Uptime = report.Data.Uptime
		status.Error = report.Error
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(cmd.OutOrStdout(), status)
	case output.FormatYAML:
		return output.PrintYAML(cmd.OutOrStdout(), status)
	default:
		printStatusTable(cmd.OutOrStdout(), status)
		return nil
	}
}

func printStatusTable(w io.Writer, status ServerStatus) {
	marker := "\033[33m● %s\033[0m"
	switch {
	case status.Healthy:
		marker = "\033[32m● %s\033[0m"
	case status.Status == "unreachable":
		marker = "\033[31m○ %s\033[0m"
	}

	fmt.Fprintf(w, "\nDMS Master Status\n=================\n\n")
	fmt.Fprintf(w, "  Server:     %s\n", status.Server)
	fmt.Fprintf(w, "  Status:     "+marker+"\n", status.Status)
	if status.Service != "" {
		fmt.Fprintf(w, "  Service:    %s\n", status.Service)
	}
	if status.StartedAt != "" {
		fmt.Fprintf(w, "  Started:    %s\n", timeutil.FormatTime(status.StartedAt))
	}
	if status.Uptime != "" {
		fmt.Fprintf(w, "  Uptime:     %s\n", timeutil.FormatUptime(status.Uptime))
	}
	if status.Error != "" {
		fmt.Fprintf(w, "  Error:      %s\n", status.Error)
	}
	fmt.Fprintln(w)
}
