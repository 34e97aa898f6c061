// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
)

// MinReadBufferSize is the smallest accepted read buffer. Anything below
// this cannot hold even a short SET request.
const MinReadBufferSize = 64

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.RESP.Addr == "" {
		return errors.New("server.resp.addr is required")
	}
	if cfg.RESP.ReadBufferSize < MinReadBufferSize {
		return fmt.Errorf("server.resp.read_buffer_size must be at least %d", MinReadBufferSize)
	}
	if cfg.RESP.RateLimit < 0 {
		return errors.New("server.resp.rate_limit must not be negative")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		return errors.New("server.metrics.addr is required when metrics are enabled")
	}
	return nil
}

func verifyStore(cfg *StoreSection) error {
	if cfg.Shards <= 0 || cfg.Shards&(cfg.Shards-1) != 0 {
		return errors.New("store.shards must be a positive power of 2")
	}
	if cfg.SweepEnabled && cfg.SweepInterval <= 0 {
		return errors.New("store.sweep_interval must be positive when the sweeper is enabled")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}
