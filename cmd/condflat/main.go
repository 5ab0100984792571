package main

import (
	"fmt"
	"os"

	"github.com/mamaar/condflat/internal/cli"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := root.Execute(); err != nil {
		if !cli.IsSilent(err) {
			fmt.Fprintf(os.Stderr, "condflat: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
