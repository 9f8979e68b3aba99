// Package main provides the entry point for keeva-cli.
//
// keeva-cli sends a single command to a keeva server and prints the
// rendered reply.
package main

import (
	"fmt"
	"os"

	"github.com/keevadb/keeva-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
