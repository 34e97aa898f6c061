// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for keyline-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	RESP    RESPConfig    `koanf:"resp"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// RESPConfig configures the line-framed key-value protocol listener.
type RESPConfig struct {
	// Addr is the TCP listen address.
	Addr string `koanf:"addr"`

	// WriteTimeout is the per-reply write deadline.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// IdleTimeout closes connections with no traffic between requests.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// ReadBufferSize is the per-connection read buffer in bytes. A request
	// that fills the entire buffer is rejected as too large.
	ReadBufferSize int `koanf:"read_buffer_size"`

	// RateLimit is the maximum number of commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StoreSection configures the keyspace store.
type StoreSection struct {
	// Shards is the shard count of the keyspace map. Must be a power of 2.
	Shards int `koanf:"shards"`

	// SweepEnabled turns on the background expiry sweeper.
	SweepEnabled bool `koanf:"sweep_enabled"`

	// SweepInterval is the interval between expiry sweeps.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
