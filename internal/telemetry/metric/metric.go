// Package metric provides Prometheus metrics for keeva.
//
// It exposes connection counts, per-command throughput and latency, and
// the resident key count, in Prometheus format on an optional HTTP
// endpoint.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "keeva"

// Registry holds all application metrics.
type Registry struct {
	// Connection metrics
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Store metrics
	KeysStored prometheus.GaugeFunc

	reg *prometheus.Registry
}

// New creates a metrics registry. keyCount is sampled on scrape to
// report the store's resident key count; nil disables the gauge.
func New(keyCount func() float64) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	r := &Registry{
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of currently open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted client connections.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of dispatched commands.",
		}, []string{"command"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command execution time, excluding socket I/O.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		reg: reg,
	}

	reg.MustRegister(r.ConnectionsActive, r.ConnectionsTotal, r.CommandsTotal, r.CommandDuration)

	if keyCount != nil {
		r.KeysStored = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys_stored",
			Help:      "Resident keys, including expired entries not yet evicted.",
		}, keyCount)
		reg.MustRegister(r.KeysStored)
	}

	return r
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
