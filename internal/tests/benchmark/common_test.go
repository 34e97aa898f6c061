package benchmark

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/keyline-go/internal/storage/keyspace"
)

// KeyCounts defines the keyspace sizes for benchmarking.
var KeyCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 5000, 10000}

// benchValue is a payload in the typical session-token size range.
var benchValue = []byte("v0123456789abcdef0123456789abcdef")

// prefillStore loads n keys and returns their names.
func prefillStore(store *keyspace.Store, n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("bench:key:%d", i)
		store.Set(keys[i], benchValue)
	}
	return keys
}

// prefillStoreTTL loads n keys that expire after ttl.
func prefillStoreTTL(store *keyspace.Store, n int, ttl time.Duration) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("bench:ttl:%d", i)
		store.SetWithTTL(keys[i], benchValue, ttl)
	}
	return keys
}

// reportMemory reports current heap usage as a benchmark metric.
func reportMemory(b *testing.B, name string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/(1024*1024), name+"_heap_mb")
}
