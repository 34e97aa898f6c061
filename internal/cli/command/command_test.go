package command

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyline-go/internal/server/respserver"
	"github.com/yndnr/keyline-go/internal/storage/keyspace"
)

func startServer(t *testing.T) string {
	t.Helper()
	cfg := respserver.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"

	srv := respserver.New(cfg, keyspace.New(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv.Addr()
}

// runApp executes one CLI invocation against addr and returns its output.
func runApp(t *testing.T, addr string, args ...string) (string, error) {
	t.Helper()
	app := App()
	var out bytes.Buffer
	app.Writer = &out

	argv := append([]string{"keyline-cli", "--server", addr}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func TestApp_Ping(t *testing.T) {
	addr := startServer(t)

	out, err := runApp(t, addr, "ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if strings.TrimSpace(out) != "PONG" {
		t.Fatalf("output = %q, want PONG", out)
	}
}

func TestApp_SetGetDel(t *testing.T) {
	addr := startServer(t)

	out, err := runApp(t, addr, "set", "foo", "bar")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if strings.TrimSpace(out) != "OK" {
		t.Fatalf("set output = %q, want OK", out)
	}

	out, err = runApp(t, addr, "get", "foo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(out) != "bar" {
		t.Fatalf("get output = %q, want bar", out)
	}

	out, err = runApp(t, addr, "del", "foo")
	if err != nil {
		t.Fatalf("del: %v", err)
	}
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("del output = %q, want 1", out)
	}

	out, err = runApp(t, addr, "get", "foo")
	if err != nil {
		t.Fatalf("get after del: %v", err)
	}
	if strings.TrimSpace(out) != "(nil)" {
		t.Fatalf("get after del output = %q, want (nil)", out)
	}
}

func TestApp_SetWithTTL(t *testing.T) {
	addr := startServer(t)

	if _, err := runApp(t, addr, "set", "--ttl", "30s", "timed", "v"); err != nil {
		t.Fatalf("set --ttl: %v", err)
	}

	out, err := runApp(t, addr, "ttl", "timed")
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	remaining, err := time.ParseDuration(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("ttl output %q is not a duration: %v", out, err)
	}
	if remaining <= 0 || remaining > 30*time.Second {
		t.Fatalf("ttl = %v, want within (0, 30s]", remaining)
	}

	out, err = runApp(t, addr, "ttl", "absent")
	if err != nil {
		t.Fatalf("ttl absent: %v", err)
	}
	if strings.TrimSpace(out) != "(missing)" {
		t.Fatalf("ttl absent output = %q, want (missing)", out)
	}
}

func TestApp_Exists(t *testing.T) {
	addr := startServer(t)

	if _, err := runApp(t, addr, "set", "a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	out, err := runApp(t, addr, "exists", "a", "b")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("exists output = %q, want 1", out)
	}
}

func TestApp_MissingArgs(t *testing.T) {
	addr := startServer(t)

	if _, err := runApp(t, addr, "get"); err == nil {
		t.Fatal("get without key succeeded, want argument error")
	}
	if _, err := runApp(t, addr, "set", "only-key"); err == nil {
		t.Fatal("set without value succeeded, want argument error")
	}
}

func TestApp_REPL(t *testing.T) {
	addr := startServer(t)

	app := App()
	var out bytes.Buffer
	app.Writer = &out
	app.Reader = strings.NewReader("set foo bar\nget foo\nget missing\nquit\n")

	err := app.Run([]string{"keyline-cli", "--server", addr, "repl"})
	if err != nil {
		t.Fatalf("repl: %v", err)
	}

	got := out.String()
	for _, want := range []string{"OK", "bar", "(nil)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("repl output %q missing %q", got, want)
		}
	}
}

// Smoke check that the app wires all expected subcommands.
func TestApp_Commands(t *testing.T) {
	app := App()
	want := []string{"ping", "echo", "get", "set", "del", "exists", "ttl", "repl"}

	names := make(map[string]bool)
	var collect func([]*cli.Command)
	collect = func(cmds []*cli.Command) {
		for _, cmd := range cmds {
			names[cmd.Name] = true
		}
	}
	collect(app.Commands)

	for _, name := range want {
		if !names[name] {
			t.Fatalf("command %q not registered", name)
		}
	}
}
