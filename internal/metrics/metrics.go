// Package metrics exposes Prometheus instrumentation for graph operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors recorded by the graph service.
type Metrics struct {
	registry *prometheus.Registry

	Operations       *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec
	Users            prometheus.Gauge
	Connections      prometheus.Gauge
	SnapshotSaves    *prometheus.CounterVec
}

// New creates the collectors and registers them on a dedicated registry
// together with Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "socialgraph",
				Subsystem: "engine",
				Name:      "operations_total",
				Help:      "Graph operations by name and outcome",
			},
			[]string{"operation", "status"},
		),
		OperationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "socialgraph",
				Subsystem: "engine",
				Name:      "operation_duration_seconds",
				Help:      "Time spent executing graph operations",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
			},
			[]string{"operation"},
		),
		Users: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "socialgraph",
			Subsystem: "graph",
			Name:      "users",
			Help:      "Number of users in the graph",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "socialgraph",
			Subsystem: "graph",
			Name:      "connections",
			Help:      "Number of undirected connections in the graph",
		}),
		SnapshotSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "socialgraph",
				Subsystem: "store",
				Name:      "saves_total",
				Help:      "Snapshot saves by backend and outcome",
			},
			[]string{"backend", "status"},
		),
	}

	m.registry.MustRegister(
		m.Operations,
		m.OperationLatency,
		m.Users,
		m.Connections,
		m.SnapshotSaves,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveOperation records one operation outcome. A nil receiver is a no-op.
func (m *Metrics) ObserveOperation(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Operations.WithLabelValues(operation, status).Inc()
	m.OperationLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// SetGraphSize updates the size gauges.
func (m *Metrics) SetGraphSize(users, connections int) {
	if m == nil {
		return
	}
	m.Users.Set(float64(users))
	m.Connections.Set(float64(connections))
}

// ObserveSave records a snapshot save against backend.
func (m *Metrics) ObserveSave(backend string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.SnapshotSaves.WithLabelValues(backend, status).Inc()
}
