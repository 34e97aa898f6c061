// Package domain defines the core domain models for keyline.
//
// keyline is a single-node in-memory key-value server. The domain layer
// is intentionally thin: durable state lives in the keyspace store, and
// this package carries the structured error taxonomy shared by the
// protocol server and the CLI.
//
// Error codes follow the format KL-<AREA>-<NNNN>:
//
//   - KL-CMD-*: command shape and dispatch errors
//   - KL-PROTO-*: wire decoding and limit errors
package domain
