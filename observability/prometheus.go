// Package observability exports weft metrics to Prometheus.
package observability

import (
	"time"

	"github.com/hupe1980/weft"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver implements weft.MetricsObserver.
type PrometheusObserver struct {
	opLatency   *prometheus.HistogramVec
	bulkSeeds   prometheus.Histogram
	graphNodes  prometheus.Gauge
	graphEdges  prometheus.Gauge
	finalized   prometheus.Counter
	topoSorts   *prometheus.CounterVec
	bulkQueries *prometheus.CounterVec
}

var _ weft.MetricsObserver = (*PrometheusObserver)(nil)

// NewPrometheusObserver creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weft_operation_latency_seconds",
			Help:    "Latency of graph operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		bulkSeeds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weft_bulk_query_seeds",
			Help:    "Number of seeds per bulk query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		graphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weft_last_finalized_nodes",
			Help: "Node count of the most recently finalized graph",
		}),
		graphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weft_last_finalized_edges",
			Help: "Edge count of the most recently finalized graph",
		}),
		finalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weft_graphs_finalized_total",
			Help: "Total graphs produced by builders",
		}),
		topoSorts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weft_topological_sorts_total",
			Help: "Topological sorts computed, by outcome",
		}, []string{"result"}),
		bulkQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weft_bulk_queries_total",
			Help: "Bulk ancestor/descendant queries",
		}, []string{"kind", "status"}),
	}

	reg.MustRegister(
		o.opLatency,
		o.bulkSeeds,
		o.graphNodes,
		o.graphEdges,
		o.finalized,
		o.topoSorts,
		o.bulkQueries,
	)
	return o
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// OnFinalize implements weft.MetricsObserver.
func (o *PrometheusObserver) OnFinalize(nodes, edges int, d time.Duration) {
	o.opLatency.WithLabelValues("finalize", "success").Observe(d.Seconds())
	o.graphNodes.Set(float64(nodes))
	o.graphEdges.Set(float64(edges))
	o.finalized.Inc()
}

// OnBulkQuery implements weft.MetricsObserver.
func (o *PrometheusObserver) OnBulkQuery(kind string, seeds int, d time.Duration, err error) {
	o.opLatency.WithLabelValues(kind, status(err)).Observe(d.Seconds())
	o.bulkQueries.WithLabelValues(kind, status(err)).Inc()
	o.bulkSeeds.Observe(float64(seeds))
}

// OnTopologicalSort implements weft.MetricsObserver.
func (o *PrometheusObserver) OnTopologicalSort(_ int, cyclic bool, d time.Duration) {
	result := "acyclic"
	if cyclic {
		result = "cyclic"
	}
	o.opLatency.WithLabelValues("toposort", "success").Observe(d.Seconds())
	o.topoSorts.WithLabelValues(result).Inc()
}
