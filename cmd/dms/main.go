// Command dms runs the master control plane of the distributed file
// synchronization system.
package main

import (
	"fmt"
	"os"

	"github.com/dmsproject/dms/cmd/dms/commands"
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
