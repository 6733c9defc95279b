// Package metrics exposes Prometheus collectors for polling and the live
// topology graph.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Poll results
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultTimeout = "timeout"
)

// Registry holds all sdntopo collectors on a private Prometheus registry
type Registry struct {
	registry *prometheus.Registry

	PollsTotal   *prometheus.CounterVec
	PollDuration *prometheus.HistogramVec

	TopologyChangesTotal prometheus.Counter
	TopologyNodes        prometheus.Gauge
	TopologyLinks        prometheus.Gauge
	ActiveSwitches       prometheus.Gauge
	ControllersUp        prometheus.Gauge

	SSEClients prometheus.Gauge
}

// NewRegistry creates a registry with all collectors initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initPollMetrics()
	r.initTopologyMetrics()

	return r
}

func (r *Registry) initPollMetrics() {
	r.PollsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdntopo_polls_total",
			Help: "Total number of snapshot polls",
		},
		[]string{"adapter", "result"}, // success, error, timeout
	)

	r.PollDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sdntopo_poll_duration_seconds",
			Help:    "Duration of snapshot polls in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"adapter"},
	)
}

func (r *Registry) initTopologyMetrics() {
	r.TopologyChangesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sdntopo_topology_changes_total",
			Help: "Number of reconciles that changed the live graph",
		},
	)

	r.TopologyNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdntopo_topology_nodes",
			Help: "Switches in the live graph",
		},
	)

	r.TopologyLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdntopo_topology_links",
			Help: "Links in the live graph",
		},
	)

	r.ActiveSwitches = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdntopo_topology_active_switches",
			Help: "Switches in the live graph that are not inactive",
		},
	)

	r.ControllersUp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdntopo_controllers_up",
			Help: "Controllers currently reported up",
		},
	)

	r.SSEClients = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdntopo_sse_clients",
			Help: "Connected event stream clients",
		},
	)
}

// RecordPoll records one adapter sync with its outcome
func (r *Registry) RecordPoll(adapter, result string, duration time.Duration) {
	r.PollsTotal.WithLabelValues(adapter, result).Inc()
	r.PollDuration.WithLabelValues(adapter).Observe(duration.Seconds())
}

// UpdateTopology sets the graph size gauges
func (r *Registry) UpdateTopology(nodes, links, active int) {
	r.TopologyNodes.Set(float64(nodes))
	r.TopologyLinks.Set(float64(links))
	r.ActiveSwitches.Set(float64(active))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
