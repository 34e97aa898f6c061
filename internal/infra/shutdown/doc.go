// Package shutdown provides graceful shutdown for keyline-server.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration in reverse order of startup
package shutdown
