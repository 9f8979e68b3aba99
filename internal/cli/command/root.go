// Package command provides the CLI command definitions for keeva-cli.
//
// It uses urfave/cli/v2 for argument parsing. The default action sends
// its arguments to the server as a single command and renders the
// reply.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/keevadb/keeva-go/internal/cli/connection"
	"github.com/keevadb/keeva-go/internal/cli/output"
	"github.com/keevadb/keeva-go/internal/infra/buildinfo"
)

// DefaultServerAddr is where the CLI connects when no address is given.
const DefaultServerAddr = "127.0.0.1:6379"

// dial is swapped out in tests.
var dial = connection.Dial

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "keeva-cli",
		Usage:     "command-line client for the keeva key-value server",
		ArgsUsage: "COMMAND [arg ...]",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Action:    run,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address (host:port)",
			EnvVars: []string{"KEEVA_SERVER"},
			Value:   DefaultServerAddr,
		},
	}
}

func run(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return cli.ShowAppHelp(c)
	}

	client, err := dial(c.String("server"))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", c.String("server"), err)
	}
	defer client.Close()

	reply, err := client.Do(args...)
	if err != nil {
		return fmt.Errorf("send command: %w", err)
	}

	// Error replies are server output, not client failures.
	fmt.Fprintln(c.App.Writer, output.Render(reply))
	return nil
}
