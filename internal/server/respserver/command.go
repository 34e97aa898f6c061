package respserver

import (
	"log/slog"
	"time"

	"github.com/yndnr/keyline-go/internal/core/domain"
	"github.com/yndnr/keyline-go/internal/storage/keyspace"
	"github.com/yndnr/keyline-go/internal/telemetry/metric"
)

// Handler executes decoded requests against the keyspace store.
//
// The handler is stateless between calls; all durable state lives in the
// store. Each decoded request is handled independently.
type Handler struct {
	store   *keyspace.Store
	logger  *slog.Logger
	metrics *metric.Registry
}

// NewHandler creates a new command handler.
func NewHandler(store *keyspace.Store, metrics *metric.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle interprets one decoded token sequence and returns the serialized
// reply. closeConn is true when the client asked to end the session.
//
// Per-request errors never escape as Go errors: they are confined to an
// error reply so the session continues.
func (h *Handler) Handle(tokens []string) (reply []byte, closeConn bool) {
	cmd, err := ParseCommand(tokens)
	if err != nil {
		h.countError(err)
		return errorReply(err), false
	}

	start := time.Now()
	defer func() {
		if h.metrics != nil {
			h.metrics.CommandsTotal.WithLabelValues(cmd.Name()).Inc()
			h.metrics.RequestDuration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())
		}
	}()

	switch c := cmd.(type) {
	case Ping:
		return replyPong, false

	case Echo:
		return simpleString(c.Message), false

	case Get:
		val, ok := h.store.Get(c.Key)
		if !ok {
			return replyNullBulk, false
		}
		return bulk(val), false

	case Set:
		if c.HasTTL {
			h.store.SetWithTTL(c.Key, c.Value, c.TTL)
		} else {
			h.store.Set(c.Key, c.Value)
		}
		return replyOK, false

	case Del:
		removed := 0
		for _, key := range c.Keys {
			if h.store.Delete(key) {
				removed++
			}
		}
		return integer(int64(removed)), false

	case Exists:
		present := 0
		for _, key := range c.Keys {
			if h.store.Exists(key) {
				present++
			}
		}
		return integer(int64(present)), false

	case TTL:
		return h.handleTTL(c), false

	case Quit:
		return replyOK, true

	default:
		// Unreachable: ParseCommand only returns known variants.
		h.countError(domain.ErrUnknownCommand)
		return errorReply(domain.ErrUnknownCommand), false
	}
}

// handleTTL follows the integer reply convention:
//
//	-2 if the key does not exist (or is expired)
//	-1 if the key exists but has no expiration
//	remaining whole seconds otherwise
func (h *Handler) handleTTL(c TTL) []byte {
	remaining, hasExpiry, exists := h.store.TTL(c.Key)
	switch {
	case !exists:
		return integer(-2)
	case !hasExpiry:
		return integer(-1)
	default:
		return integer(int64(remaining.Seconds()))
	}
}

func (h *Handler) countError(err error) {
	if h.metrics == nil {
		return
	}
	code := domain.GetErrorCode(err)
	if code == "" {
		code = "internal"
	}
	h.metrics.CommandErrors.WithLabelValues(code).Inc()
}
