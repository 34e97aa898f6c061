// Package main provides the entry point for keyline-cli.
//
// The CLI tool provides command-line access to a keyline server for:
//
//   - Liveness checks (ping, echo)
//   - Key management (get, set, del, exists, ttl)
//   - Interactive exploration (repl)
//
// Usage:
//
//	keyline-cli [command] [flags]
//	keyline-cli --server 127.0.0.1:6379 get mykey
//	keyline-cli set --ttl 30s session abc123
//
// The CLI supports both single-command mode and interactive REPL mode.
package main
