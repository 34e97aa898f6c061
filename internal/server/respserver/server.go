package respserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/keyline-go/internal/core/domain"
	"github.com/yndnr/keyline-go/internal/storage/keyspace"
	"github.com/yndnr/keyline-go/internal/telemetry/metric"
)

// Config holds the protocol server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// WriteTimeout is the deadline for writing a reply (default: 30s).
	WriteTimeout time.Duration
	// IdleTimeout is the deadline for the next request to arrive
	// (default: 5m).
	IdleTimeout time.Duration
	// ReadBufferSize bounds one request in bytes (default: 4096).
	// A read that fills the whole buffer is rejected as too large.
	ReadBufferSize int
	// RateLimit is the maximum number of commands per second per IP.
	// Zero disables rate limiting.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:           "127.0.0.1:6379",
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    5 * time.Minute,
		ReadBufferSize: 4096,
		RateLimit:      0,
	}
}

// Server accepts connections and runs one session per connection.
type Server struct {
	cfg     *Config
	handler *Handler
	limiter *ipLimiter
	metrics *metric.Registry
	logger  *slog.Logger

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a new protocol server backed by the given keyspace store.
// The store handle is shared by all sessions for the process lifetime.
func New(cfg *Config, store *keyspace.Store, metrics *metric.Registry, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		handler: NewHandler(store, metrics, logger),
		metrics: metrics,
		logger:  logger,
	}

	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit)
	}

	return s
}

// Start binds the listener and begins accepting connections.
// It returns once the listener is bound; sessions run in goroutines.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)

	s.logger.Info("server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx); err != nil && s.running.Load() {
			s.logger.Error("accept loop error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, or empty before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown stops accepting connections and waits for in-flight sessions
// to drain, bounded by the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var closeErr error
	if s.ln != nil {
		closeErr = s.ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return closeErr
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

// serveConn runs one session: read a request, decode, dispatch, write the
// reply, loop. Requests from a single connection are handled strictly in
// arrival order.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	connID := ulid.Make().String()
	remote := conn.RemoteAddr().String()
	log := s.logger.With("conn", connID, "remote", remote)
	log.Debug("connection opened")

	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
		defer s.metrics.ConnectionsActive.Dec()
	}

	buf := make([]byte, s.cfg.ReadBufferSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
			return
		}

		n, err := conn.Read(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("connection closed by peer")
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection idle timeout")
				return
			}
			log.Debug("connection read error", "error", err)
			return
		}
		if n == 0 {
			log.Debug("connection closed by peer")
			return
		}

		// A request that fills the whole buffer cannot be framed
		// reliably; reject it and close rather than truncate silently.
		if n == len(buf) {
			log.Warn("request exceeds read buffer", "limit", len(buf))
			s.writeReply(conn, errorReply(domain.ErrRequestTooLarge))
			return
		}

		tokens, err := SplitTokens(buf, n)
		if err != nil {
			log.Debug("request decode error", "error", err)
			if !s.writeReply(conn, errorReply(err)) {
				return
			}
			continue
		}
		if len(tokens) == 0 {
			if !s.writeReply(conn, errorReply(domain.ErrMalformedRequest)) {
				return
			}
			continue
		}

		if s.limiter != nil && !s.limiter.allow(remote) {
			if !s.writeReply(conn, errorReply(domain.ErrRateLimited)) {
				return
			}
			continue
		}

		reply, closeConn := s.handler.Handle(tokens)
		if !s.writeReply(conn, reply) {
			return
		}
		if closeConn {
			log.Debug("connection closed by request")
			return
		}
	}
}

// writeReply writes one serialized reply under the write deadline.
// Returns false when the session should end.
func (s *Server) writeReply(conn net.Conn, reply []byte) bool {
	if err := conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		return false
	}
	if _, err := conn.Write(reply); err != nil {
		s.logger.Debug("reply write error", "error", err)
		return false
	}
	return true
}
