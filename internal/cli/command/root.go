// Package command provides CLI command definitions for keyline-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and interactive REPL mode.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyline-go/internal/cli/client"
	"github.com/yndnr/keyline-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "keyline-cli",
		Usage:   "keyline command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			GetCommand(),
			SetCommand(),
			DelCommand(),
			ExistsCommand(),
			TTLCommand(),
			REPLCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "keyline server address",
			EnvVars: []string{"KEYLINE_SERVER"},
			Value:   "127.0.0.1:6379",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "request timeout",
			Value:   client.DefaultTimeout,
		},
	}
}

// connect dials the server named by the global flags.
func connect(c *cli.Context) (*client.Client, error) {
	cl, err := client.Dial(c.String("server"), client.WithTimeout(c.Duration("timeout")))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return cl, nil
}

// withClient runs fn with a connected client, closing it afterwards.
func withClient(c *cli.Context, fn func(*client.Client) error) error {
	cl, err := connect(c)
	if err != nil {
		return err
	}
	defer cl.Close()
	return fn(cl)
}
