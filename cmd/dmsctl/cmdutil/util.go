// Package cmdutil provides shared utilities for dmsctl commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmsproject/dms/internal/cli/output"
	"github.com/dmsproject/dms/internal/cli/prompt"
	"github.com/dmsproject/dms/pkg/apiclient"
)

// DefaultServerURL is used when neither --server nor DMS_SERVER is set.
const DefaultServerURL = "http://localhost:8000"

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ServerURL string
	Output    string
	NoColor   bool
	Yes       bool
}

// ServerURL resolves the master address: the --server flag if provided,
// then the DMS_SERVER environment variable, then DefaultServerURL.
func ServerURL() string {
	if Flags.ServerURL != "" {
		return Flags.ServerURL
	}
	if env := os.Getenv("DMS_SERVER"); env != "" {
		return env
	}
	return DefaultServerURL
}

// GetClient returns an API client for the resolved master address.
func GetClient() *apiclient.Client {
	return apiclient.New(ServerURL())
}

// GetOutputFormatParsed returns the parsed --output format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// IsColorDisabled reports whether --no-color was given.
func IsColorDisabled() bool {
	return Flags.NoColor
}

// render writes data as JSON or YAML, or falls through to the table
// branch for the default format.
func render(w io.Writer, data any, table func() error) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		return table()
	}
}

// PrintOutput renders a listing: machine formats get the raw data, the
// table format gets the renderer, or emptyMsg when there is nothing to
// show.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, tableRenderer output.TableRenderer) error {
	return render(w, data, func() error {
		if isEmpty {
			_, err := fmt.Fprintln(w, emptyMsg)
			return err
		}
		return output.PrintTable(w, tableRenderer)
	})
}

// PrintResource renders a single resource, using the renderer for the
// table format.
func PrintResource(w io.Writer, data any, tableRenderer output.TableRenderer) error {
	return render(w, data, func() error {
		return output.PrintTable(w, tableRenderer)
	})
}

// PrintResourceWithSuccess renders a single resource, with the table
// format reduced to a success line. Used by submit, reassign, and other
// mutations where the interactive caller only needs an acknowledgement.
func PrintResourceWithSuccess(w io.Writer, data any, successMsg string) error {
	return render(w, data, func() error {
		PrintSuccess(successMsg)
		return nil
	})
}

// PrintSuccess prints a success line, but only for the table format so
// JSON and YAML output stays machine-parseable.
func PrintSuccess(msg string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	output.NewPrinter(os.Stdout, format, !IsColorDisabled()).Success(msg)
}

// RunDeleteWithConfirmation prompts for confirmation (unless force or the
// global --yes flag is set) and runs deleteFn.
func RunDeleteWithConfirmation(resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s '%s'?", resourceType, name), force || Flags.Yes)
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return nil
		}
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := deleteFn(); err != nil {
		return err
	}
	PrintSuccess(fmt.Sprintf("%s '%s' deleted successfully", resourceType, name))
	return nil
}

// ParseCommaSeparatedList splits a comma-separated string, trimming
// whitespace and dropping empty entries.
func ParseCommaSeparatedList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// BoolToYesNo renders a boolean as "yes" or "no" for table cells.
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EmptyOr substitutes fallback for an empty value, for table cells that
// show "-" instead of nothing.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
