// Command dmsctl is the remote management client for a DMS master.
package main

import (
	"fmt"
	"os"

	"github.com/dmsproject/dms/cmd/dmsctl/commands"
)

// Stamped by release builds through -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetBuildInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
