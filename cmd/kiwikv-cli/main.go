// Package main provides the entry point for kiwikv-cli.
//
// kiwikv-cli is the command-line client for kiwikv-server.
package main

import (
	"fmt"
	"os"

	"github.com/kiwikv/kiwikv/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
