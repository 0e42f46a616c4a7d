// Package metrics exposes Prometheus instrumentation for the server.
// This is additive observability (SPEC_FULL.md §4.11, §2): it has no
// effect on RESP wire behavior and no component depends on reading
// these values back — it's a one-way export, grounded on the
// canonical-redis_exporter reference file's collector/registry shape.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors a running server reports.
type Metrics struct {
	Registry           *prometheus.Registry
	ConnectedClients   prometheus.Gauge
	CommandsTotal      *prometheus.CounterVec
	ReplicasConnected  prometheus.Gauge
	ReplicationOffset  prometheus.Gauge
}

// New builds a fresh registry with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goredis",
			Name:      "connected_clients",
			Help:      "Number of client connections currently open.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goredis",
			Name:      "commands_total",
			Help:      "Commands dispatched, labeled by verb.",
		}, []string{"command"}),
		ReplicasConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goredis",
			Name:      "replicas_connected",
			Help:      "Number of replicas currently registered for fan-out.",
		}),
		ReplicationOffset: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goredis",
			Name:      "replication_offset",
			Help:      "Running byte offset of write commands propagated to replicas.",
		}),
	}

	reg.MustRegister(m.ConnectedClients, m.CommandsTotal, m.ReplicasConnected, m.ReplicationOffset)
	return m
}

// Serve starts an HTTP server exposing /metrics on addr and returns it
// so the caller can shut it down gracefully. It does not block.
func (m *Metrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}

// Shutdown gives the metrics HTTP server a bounded window to drain.
func Shutdown(srv *http.Server) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
