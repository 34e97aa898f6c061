package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyline-go/internal/cli/client"
)

// REPLCommand returns the interactive mode command. A single connection
// is held open for the whole session, so PX expirations and QUIT behave
// the same as they would for any long-lived client.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Action: func(c *cli.Context) error {
			cl, err := connect(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			return runREPL(c.App.Reader, c.App.Writer, cl)
		},
	}
}

// runREPL reads commands line by line and prints each reply.
func runREPL(in io.Reader, out io.Writer, cl *client.Client) error {
	reader := bufio.NewReader(in)

	for {
		fmt.Fprint(out, "keyline> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return cl.Quit()
		}

		args := strings.Fields(line)
		reply, err := cl.Do(args...)
		if err != nil {
			return fmt.Errorf("exchange failed: %w", err)
		}
		printReply(out, reply)
	}
}

// printReply renders one reply in the conventional interactive form.
func printReply(out io.Writer, reply client.Reply) {
	switch reply.Kind {
	case client.KindError:
		fmt.Fprintf(out, "(error) %v\n", reply.Err)
	case client.KindNull:
		fmt.Fprintln(out, "(nil)")
	case client.KindInteger:
		fmt.Fprintf(out, "(integer) %d\n", reply.Int)
	default:
		fmt.Fprintln(out, reply.Str)
	}
}
