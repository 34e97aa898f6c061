package respserver

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/keyline-go/internal/storage/keyspace"
)

func startTestServer(t *testing.T, cfg *Config) *Server {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Addr = "127.0.0.1:0"

	store := keyspace.New()
	srv := New(cfg, store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})

	return srv
}

func dialTestServer(t *testing.T, srv *Server) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", srv.Addr(), 2*time.Second)
	if err != nil {
		t.Fatalf("dial %s: %v", srv.Addr(), err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundtrip(t *testing.T, conn net.Conn, request string) string {
	t.Helper()
	if err := conn.SetDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetDeadline: %v", err)
	}
	if _, err := conn.Write([]byte(request)); err != nil {
		t.Fatalf("write request: %v", err)
	}
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	return string(buf[:n])
}

func TestServer_PingOverTCP(t *testing.T) {
	srv := startTestServer(t, nil)
	conn := dialTestServer(t, srv)

	if got := roundtrip(t, conn, "*1\r\n$4\r\nping\r\n"); got != "+PONG\r\n" {
		t.Fatalf("reply = %q, want +PONG", got)
	}
}

func TestServer_SetGetOverTCP(t *testing.T) {
	srv := startTestServer(t, nil)
	conn := dialTestServer(t, srv)

	if got := roundtrip(t, conn, "*3\r\n$3\r\nset\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"); got != "+OK\r\n" {
		t.Fatalf("SET reply = %q, want +OK", got)
	}
	if got := roundtrip(t, conn, "*2\r\n$3\r\nget\r\n$3\r\nfoo\r\n"); got != "$3\r\nbar\r\n" {
		t.Fatalf("GET reply = %q, want bar", got)
	}
}

func TestServer_KeysSharedAcrossConnections(t *testing.T) {
	srv := startTestServer(t, nil)

	writer := dialTestServer(t, srv)
	if got := roundtrip(t, writer, "*3\r\n$3\r\nSET\r\n$6\r\nshared\r\n$3\r\nval\r\n"); got != "+OK\r\n" {
		t.Fatalf("SET reply = %q, want +OK", got)
	}

	reader := dialTestServer(t, srv)
	if got := roundtrip(t, reader, "*2\r\n$3\r\nGET\r\n$6\r\nshared\r\n"); got != "$3\r\nval\r\n" {
		t.Fatalf("GET reply = %q, want val", got)
	}
}

func TestServer_ErrorKeepsSessionOpen(t *testing.T) {
	srv := startTestServer(t, nil)
	conn := dialTestServer(t, srv)

	got := roundtrip(t, conn, "*1\r\n$5\r\nFLUSH\r\n")
	if !strings.HasPrefix(got, "-Error KL-CMD-4040") {
		t.Fatalf("reply = %q, want -Error KL-CMD-4040 prefix", got)
	}

	// The session survives a per-request error.
	if got := roundtrip(t, conn, "*1\r\n$4\r\nPING\r\n"); got != "+PONG\r\n" {
		t.Fatalf("reply after error = %q, want +PONG", got)
	}
}

func TestServer_OversizedRequestClosesConnection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReadBufferSize = 64
	srv := startTestServer(t, cfg)
	conn := dialTestServer(t, srv)

	got := roundtrip(t, conn, strings.Repeat("x", 256))
	if !strings.HasPrefix(got, "-Error KL-PROTO-4130") {
		t.Fatalf("reply = %q, want -Error KL-PROTO-4130 prefix", got)
	}

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	buf := make([]byte, 16)
	if _, err := conn.Read(buf); err == nil {
		t.Fatal("read after oversized request succeeded, want closed connection")
	}
}

func TestServer_QuitClosesConnection(t *testing.T) {
	srv := startTestServer(t, nil)
	conn := dialTestServer(t, srv)

	if got := roundtrip(t, conn, "*1\r\n$4\r\nQUIT\r\n"); got != "+OK\r\n" {
		t.Fatalf("QUIT reply = %q, want +OK", got)
	}

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	buf := make([]byte, 16)
	if _, err := conn.Read(buf); err != io.EOF {
		t.Fatalf("read after QUIT = %v, want io.EOF", err)
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 1
	srv := startTestServer(t, cfg)
	conn := dialTestServer(t, srv)

	// The limiter starts with a burst of one token; a rapid second
	// request is rejected but the session stays open.
	limited := false
	for i := 0; i < 5; i++ {
		got := roundtrip(t, conn, "*1\r\n$4\r\nPING\r\n")
		if strings.HasPrefix(got, "-Error KL-CMD-4290") {
			limited = true
			break
		}
		if got != "+PONG\r\n" {
			t.Fatalf("reply = %q, want +PONG or rate limit error", got)
		}
	}
	if !limited {
		t.Fatal("rate limiter never rejected a rapid request")
	}

	time.Sleep(1100 * time.Millisecond)
	if got := roundtrip(t, conn, "*1\r\n$4\r\nPING\r\n"); got != "+PONG\r\n" {
		t.Fatalf("reply after refill = %q, want +PONG", got)
	}
}

func TestServer_ShutdownStopsAccepting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	store := keyspace.New()
	srv := New(cfg, store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	addr := srv.Addr()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if _, err := net.DialTimeout("tcp", addr, 500*time.Millisecond); err == nil {
		t.Fatal("dial after shutdown succeeded, want refusal")
	}
}
