// Package main provides the entry point for keyline-server.
//
// keyline-server is a single-node in-memory key-value server speaking a
// line-framed text protocol over TCP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/keyline-go/internal/infra/buildinfo"
	"github.com/yndnr/keyline-go/internal/infra/confloader"
	"github.com/yndnr/keyline-go/internal/infra/shutdown"
	"github.com/yndnr/keyline-go/internal/server/config"
	"github.com/yndnr/keyline-go/internal/server/respserver"
	"github.com/yndnr/keyline-go/internal/storage/keyspace"
	"github.com/yndnr/keyline-go/internal/telemetry/logger"
	"github.com/yndnr/keyline-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("keyline-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	log.Info("starting keyline-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	metrics := metric.NewRegistry()

	store := keyspace.New(
		keyspace.WithShardCount(cfg.Store.Shards),
		keyspace.WithMetrics(metrics),
	)
	metrics.RegisterKeyspaceSize(store.Len)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	// Background expiry sweeper.
	if cfg.Store.SweepEnabled {
		sweepCtx, cancelSweep := context.WithCancel(context.Background())
		sweeper := keyspace.NewSweeper(store, cfg.Store.SweepInterval, log)
		go sweeper.Run(sweepCtx)

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			cancelSweep()
			return nil
		})
	}

	srv := respserver.New(&respserver.Config{
		Addr:           cfg.Server.RESP.Addr,
		WriteTimeout:   cfg.Server.RESP.WriteTimeout,
		IdleTimeout:    cfg.Server.RESP.IdleTimeout,
		ReadBufferSize: cfg.Server.RESP.ReadBufferSize,
		RateLimit:      cfg.Server.RESP.RateLimit,
	}, store, metrics, log)

	if err := srv.Start(context.Background()); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down protocol server")
		return srv.Shutdown(ctx)
	})

	if cfg.Server.Metrics.Enabled {
		metricsServer := startMetricsServer(cfg.Server.Metrics.Addr, metrics, log)
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down metrics server")
			return metricsServer.Shutdown(ctx)
		})
	}

	if *configFile != "" {
		watcher, err := watchConfig(*configFile, log)
		if err != nil {
			// Hot reload is best effort; the server runs without it.
			log.Warn("config watcher unavailable", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// startMetricsServer serves the Prometheus endpoint on its own listener.
func startMetricsServer(addr string, metrics *metric.Registry, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()

	return srv
}

// watchConfig reloads the log level when the configuration file changes.
// Listener and store settings need a restart; only logging is hot.
func watchConfig(configFile string, log *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(path)
		if err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			log.Info("log level changed", "level", cfg.Log.Level)
			logger.SetLevel(cfg.Log.Level)
		}
	})
	watcher.StartAsync()

	return watcher, nil
}
