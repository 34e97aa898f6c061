// Package respserver implements keyline's line-framed request protocol
// over TCP.
//
// A request is an array-count marker followed by pairs of length marker
// and argument token, each line terminated by \r\n:
//
//	*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n
//
// Replies use simple strings (+OK), bulk strings ($3\r\nbar), integers
// (:1), null bulks ($-1) and error lines (-Error ...).
//
// The package is split along the request pipeline:
//
//   - decoder.go: raw buffer -> tokens (SplitTokens)
//   - parse.go: tokens -> validated Command variants (ParseCommand)
//   - command.go: Command -> reply bytes against the keyspace (Handler)
//   - server.go: listener, per-connection sessions, deadlines, shutdown
//
// The decoder splits purely on the line terminator and does not enforce
// the numeric values of the markers against token sizes; binary-safe
// arguments containing the terminator are not supported.
package respserver
