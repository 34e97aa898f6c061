package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyline-go/internal/cli/client"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "Check server liveness",
		Action: func(c *cli.Context) error {
			return withClient(c, func(cl *client.Client) error {
				pong, err := cl.Ping()
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, pong)
				return nil
			})
		},
	}
}

// EchoCommand returns the echo command.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Echo a message back from the server",
		ArgsUsage: "MESSAGE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("echo requires exactly one message argument")
			}
			return withClient(c, func(cl *client.Client) error {
				msg, err := cl.Echo(c.Args().First())
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, msg)
				return nil
			})
		},
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read the value of a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("get requires exactly one key argument")
			}
			return withClient(c, func(cl *client.Client) error {
				val, found, err := cl.Get(c.Args().First())
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintln(c.App.Writer, "(nil)")
					return nil
				}
				fmt.Fprintln(c.App.Writer, val)
				return nil
			})
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write a key, optionally with a time to live",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "expire the key after this duration",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("set requires a key and a value")
			}
			return withClient(c, func(cl *client.Client) error {
				key, val := c.Args().Get(0), c.Args().Get(1)
				var err error
				if ttl := c.Duration("ttl"); ttl > 0 {
					err = cl.SetPX(key, val, ttl)
				} else {
					err = cl.Set(key, val)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "OK")
				return nil
			})
		},
	}
}

// DelCommand returns the del command.
func DelCommand() *cli.Command {
	return &cli.Command{
		Name:      "del",
		Usage:     "Remove one or more keys",
		ArgsUsage: "KEY...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("del requires at least one key")
			}
			return withClient(c, func(cl *client.Client) error {
				n, err := cl.Del(c.Args().Slice()...)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, n)
				return nil
			})
		},
	}
}

// ExistsCommand returns the exists command.
func ExistsCommand() *cli.Command {
	return &cli.Command{
		Name:      "exists",
		Usage:     "Count how many of the given keys are present",
		ArgsUsage: "KEY...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("exists requires at least one key")
			}
			return withClient(c, func(cl *client.Client) error {
				n, err := cl.Exists(c.Args().Slice()...)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, n)
				return nil
			})
		},
	}
}

// TTLCommand returns the ttl command.
func TTLCommand() *cli.Command {
	return &cli.Command{
		Name:      "ttl",
		Usage:     "Show the remaining time to live of a key in seconds",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("ttl requires exactly one key argument")
			}
			return withClient(c, func(cl *client.Client) error {
				n, err := cl.TTL(c.Args().First())
				if err != nil {
					return err
				}
				switch n {
				case -2:
					fmt.Fprintln(c.App.Writer, "(missing)")
				case -1:
					fmt.Fprintln(c.App.Writer, "(no expiry)")
				default:
					fmt.Fprintln(c.App.Writer, time.Duration(n)*time.Second)
				}
				return nil
			})
		},
	}
}
