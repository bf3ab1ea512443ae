// SheetMV - spreadsheet-driven batch file renaming
package main

import (
	"os"

	"github.com/sheetmv/sheetmv/internal/cli"
	"github.com/sheetmv/sheetmv/internal/version"
)

// Version information, overridden at build time via -ldflags.
var (
	Version   = "v1.3.0"
	BuildTime = "unknown"
)

func main() {
	// Set version in version package (canonical source for all packages)
	// and CLI package.
	version.Version = Version
	version.BuildTime = BuildTime
	cli.Version = Version
	cli.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
