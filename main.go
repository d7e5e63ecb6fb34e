package main

import (
	"fmt"
	"os"

	"github.com/bnema/waytype/cmd"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=..."
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	if version != "" {
		cmd.Version = version
	}
	cmd.Commit = commit
	cmd.Date = date

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
