// Package main is the entry point for the keyloom CLI.
package main

import (
	"os"

	"github.com/keyloom/keyloom/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
