// Package main provides the entry point for keyline-server.
//
// The server is a single-node in-memory key-value store that provides:
//
//   - A line-framed text protocol over TCP (PING, ECHO, GET, SET with
//     millisecond expiration, DEL, EXISTS, TTL, QUIT)
//   - Passive expiry on access plus a background sweeper
//   - An optional Prometheus metrics endpoint
//
// Usage:
//
//	keyline-server [flags]
//	keyline-server --config /path/to/config.yaml
//
// The server loads configuration, initializes the keyspace store, and
// starts all configured listeners.
package main
