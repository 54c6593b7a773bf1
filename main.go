package main

import (
	"os"

	"github.com/babarot/saferm/internal/cli"
)

const appName = "saferm"

// set by goreleaser via ldflags
var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	if err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}); err != nil {
		os.Exit(1)
	}
}
