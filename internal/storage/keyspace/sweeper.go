package keyspace

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is the default interval between expiry sweeps.
const DefaultSweepInterval = 30 * time.Second

// Sweeper periodically removes expired entries from a Store.
//
// Lazy expiry alone keeps expired data invisible but leaves never-read
// entries in memory; the sweeper bounds that growth.
type Sweeper struct {
	store    *Store
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a new expiry sweeper.
func NewSweeper(store *Store, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Run executes the sweep loop until the context is cancelled.
// It blocks and should be run in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.store.RemoveExpired(); removed > 0 {
				s.logger.Debug("swept expired keys", "removed", removed)
			}
		case <-ctx.Done():
			s.logger.Debug("expiry sweeper stopped")
			return
		}
	}
}
