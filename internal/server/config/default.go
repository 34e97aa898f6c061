// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultRESPAddr    = "127.0.0.1:6379"
	DefaultMetricsAddr = "127.0.0.1:9611"

	DefaultWriteTimeout   = 30 * time.Second
	DefaultIdleTimeout    = 5 * time.Minute
	DefaultReadBufferSize = 4096

	DefaultStoreShards   = 16
	DefaultSweepInterval = 30 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			RESP: RESPConfig{
				Addr:           DefaultRESPAddr,
				WriteTimeout:   DefaultWriteTimeout,
				IdleTimeout:    DefaultIdleTimeout,
				ReadBufferSize: DefaultReadBufferSize,
				RateLimit:      0,
			},
			Metrics: MetricsConfig{
				Enabled: false,
				Addr:    DefaultMetricsAddr,
			},
		},
		Store: StoreSection{
			Shards:        DefaultStoreShards,
			SweepEnabled:  true,
			SweepInterval: DefaultSweepInterval,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
