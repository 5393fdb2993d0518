// Package main is the entry point for the Zuba usage dashboard. Without a
// subcommand it runs the terminal UI; export, seed and version are
// scriptable helpers around the same services.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
