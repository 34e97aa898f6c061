// Package keyspace provides in-memory key-value storage for keyline.
//
// It implements the process-lifetime keyspace using a sharded concurrent
// map with fine-grained locking.
//
// Features:
//
//   - Sharded Storage: Keys distributed across shards for parallelism
//   - Lazy Expiry: Expired entries are invisible to readers and removed
//     by the access that observes them
//   - Active Sweep: An optional background Sweeper bounds memory growth
//     from entries that expire without ever being read again
//
// Thread Safety:
//
// All operations are thread-safe. A Get concurrent with a Set on the same
// key observes either the value before or after the Set, never a partial
// value: entries are immutable once stored and replaced wholesale.
package keyspace
