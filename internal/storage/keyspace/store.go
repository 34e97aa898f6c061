// Package keyspace provides the in-memory key-value store for keyline.
package keyspace

import (
	"time"

	"github.com/yndnr/keyline-go/internal/telemetry/metric"
	"github.com/yndnr/keyline-go/pkg/cmap"
)

// Store holds the authoritative key->Entry mapping.
//
// All access goes through Get/Set/Delete; sessions never touch the
// underlying map directly. Expiry is lazy: an expired entry is treated
// as absent and removed as part of the access that observes it.
type Store struct {
	entries *cmap.Map[Entry]
	metrics *metric.Registry
	now     func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithShardCount sets the shard count of the underlying map.
func WithShardCount(n int) Option {
	return func(s *Store) {
		s.entries = cmap.NewWithShards[Entry](n)
	}
}

// WithMetrics attaches a metrics registry for expiry accounting.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new in-memory keyspace store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: cmap.New[Entry](),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get retrieves the value for a key.
//
// Returns false if the key was never set, or if it is present but its
// expiration instant has passed. An expired entry is deleted as part of
// the read, unless a concurrent Set already replaced it with a live one.
func (s *Store) Get(key string) ([]byte, bool) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return nil, false
	}

	if entry.Expired(s.now()) {
		s.removeExpired(key)
		return nil, false
	}

	// Return a copy to prevent external modification of stored bytes.
	val := make([]byte, len(entry.Value))
	copy(val, entry.Value)
	return val, true
}

// Set unconditionally inserts or overwrites the entry for a key with no
// expiration, replacing any prior value and TTL.
func (s *Store) Set(key string, value []byte) {
	s.entries.Set(key, Entry{Value: cloneBytes(value)})
}

// SetWithTTL inserts or overwrites the entry for a key with an expiration
// of now+ttl, computed once at call time. A zero or negative ttl yields an
// entry that is already expired.
func (s *Store) SetWithTTL(key string, value []byte, ttl time.Duration) {
	s.entries.Set(key, Entry{
		Value:     cloneBytes(value),
		ExpiresAt: s.now().Add(ttl),
	})
}

// Delete removes a key. Returns true if a live entry was removed.
func (s *Store) Delete(key string) bool {
	entry, ok := s.entries.Get(key)
	if !ok {
		return false
	}
	if entry.Expired(s.now()) {
		s.removeExpired(key)
		return false
	}
	return s.entries.Delete(key)
}

// Exists reports whether a key holds a live entry.
func (s *Store) Exists(key string) bool {
	entry, ok := s.entries.Get(key)
	if !ok {
		return false
	}
	if entry.Expired(s.now()) {
		s.removeExpired(key)
		return false
	}
	return true
}

// TTL reports the remaining time to live for a key.
//
// exists is false if the key is absent or expired. hasExpiry is false for
// a live entry with no expiration.
func (s *Store) TTL(key string) (remaining time.Duration, hasExpiry, exists bool) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return 0, false, false
	}

	now := s.now()
	if entry.Expired(now) {
		s.removeExpired(key)
		return 0, false, false
	}
	if entry.ExpiresAt.IsZero() {
		return 0, false, true
	}
	return entry.ExpiresAt.Sub(now), true, true
}

// Len returns the number of stored entries, including expired entries
// that have not yet been observed or swept.
func (s *Store) Len() int {
	return s.entries.Count()
}

// RemoveExpired removes all entries whose expiration instant has passed
// and returns the number removed. Called periodically by the Sweeper.
func (s *Store) RemoveExpired() int {
	now := s.now()

	var stale []string
	s.entries.Range(func(key string, entry Entry) bool {
		if entry.Expired(now) {
			stale = append(stale, key)
		}
		return true
	})

	removed := 0
	for _, key := range stale {
		// Re-check under the shard lock: the key may have been
		// overwritten with a live entry since the scan.
		if s.entries.DeleteIf(key, func(cur Entry) bool { return cur.Expired(now) }) {
			removed++
		}
	}

	if removed > 0 && s.metrics != nil {
		s.metrics.KeysExpired.Add(float64(removed))
	}
	return removed
}

// removeExpired deletes a key observed as expired, unless a concurrent
// Set replaced it with a live entry in the meantime.
func (s *Store) removeExpired(key string) {
	now := s.now()
	if s.entries.DeleteIf(key, func(cur Entry) bool { return cur.Expired(now) }) {
		if s.metrics != nil {
			s.metrics.KeysExpired.Inc()
		}
	}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
