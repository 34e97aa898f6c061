// Package metric provides Prometheus metrics for keyline.
//
// It exposes metrics in Prometheus format for monitoring command rates,
// connection counts, request latencies, and keyspace size.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandErrors   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Connection metrics
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter

	// Keyspace metrics
	KeysExpired prometheus.Counter

	reg *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keyline",
			Name:      "commands_total",
			Help:      "Total number of commands dispatched, by command name.",
		}, []string{"command"}),
		CommandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keyline",
			Name:      "command_errors_total",
			Help:      "Total number of request errors, by error code.",
		}, []string{"code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "keyline",
			Name:      "request_duration_seconds",
			Help:      "Command handling latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"command"}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "keyline",
			Name:      "connections_active",
			Help:      "Number of currently open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keyline",
			Name:      "connections_total",
			Help:      "Total number of accepted client connections.",
		}),
		KeysExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keyline",
			Name:      "keys_expired_total",
			Help:      "Total number of entries removed by expiry.",
		}),
		reg: reg,
	}

	reg.MustRegister(
		r.CommandsTotal,
		r.CommandErrors,
		r.RequestDuration,
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.KeysExpired,
		collectors.NewGoCollector(),
	)

	return r
}

// RegisterKeyspaceSize registers a gauge backed by the given size function.
// Called once at startup with the keyspace store's Len.
func (r *Registry) RegisterKeyspaceSize(size func() int) {
	r.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "keyline",
		Name:      "keys",
		Help:      "Number of entries currently held by the keyspace.",
	}, func() float64 {
		return float64(size())
	}))
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
