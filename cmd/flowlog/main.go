// Package main provides the entry point for flowlog.
//
// flowlog redacts call-flow payloads, writes entries through the logger and
// tails stdin into structured logs.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/flowlog/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
