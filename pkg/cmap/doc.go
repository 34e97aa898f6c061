// Package cmap provides the concurrent map used by the keyline keyspace.
//
// This package implements a sharded concurrent map with the following
// properties:
//
//   - Sharding: Configurable power-of-two shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Conditional Delete: DeleteIf runs its predicate under the shard
//     write lock, for check-then-delete patterns such as lazy expiry
//   - Iteration: Safe iteration while holding per-shard read locks
//
// Usage:
//
//	m := cmap.NewWithShards[Entry](32)
//	m.Set("key", entry)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete, DeleteIf) use Lock.
package cmap
