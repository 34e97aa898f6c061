package keyspace

import "time"

// Entry is one key's stored value plus optional expiration instant.
//
// A zero ExpiresAt means the entry never expires. Entries are replaced
// wholesale on Set and never mutated in place, so readers always observe
// a complete value.
type Entry struct {
	Value     []byte
	ExpiresAt time.Time
}

// Expired reports whether the entry is expired at the given time.
// An entry whose expiration instant is at or before now is expired.
func (e Entry) Expired(now time.Time) bool {
	if e.ExpiresAt.IsZero() {
		return false
	}
	return !e.ExpiresAt.After(now)
}
