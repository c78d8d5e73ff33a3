package weft

import (
	"sync/atomic"
	"time"
)

// MetricsObserver receives operational metrics from builders and executors.
// Implement this interface to integrate with monitoring systems; the
// observability package provides a Prometheus implementation.
type MetricsObserver interface {
	// OnFinalize is called after a Builder produced a Graph.
	OnFinalize(nodes, edges int, duration time.Duration)

	// OnBulkQuery is called after each AncestorsMany/DescendantsMany call.
	// kind is "ancestors" or "descendants", err is nil if successful.
	OnBulkQuery(kind string, seeds int, duration time.Duration, err error)

	// OnTopologicalSort is called once per Graph, when its order is first computed.
	OnTopologicalSort(nodes int, cyclic bool, duration time.Duration)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnFinalize(int, int, time.Duration)            {}
func (NoopMetricsObserver) OnBulkQuery(string, int, time.Duration, error) {}
func (NoopMetricsObserver) OnTopologicalSort(int, bool, time.Duration)    {}

// BasicMetricsObserver provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsObserver struct {
	FinalizeCount      atomic.Int64
	FinalizedNodes     atomic.Int64
	FinalizedEdges     atomic.Int64
	BulkQueryCount     atomic.Int64
	BulkQueryErrors    atomic.Int64
	BulkQuerySeeds     atomic.Int64
	BulkQueryNanos     atomic.Int64
	TopoSortCount      atomic.Int64
	CyclicGraphs       atomic.Int64
	TopoSortTotalNanos atomic.Int64
}

// OnFinalize implements MetricsObserver.
func (b *BasicMetricsObserver) OnFinalize(nodes, edges int, _ time.Duration) {
	b.FinalizeCount.Add(1)
	b.FinalizedNodes.Add(int64(nodes))
	b.FinalizedEdges.Add(int64(edges))
}

// OnBulkQuery implements MetricsObserver.
func (b *BasicMetricsObserver) OnBulkQuery(_ string, seeds int, duration time.Duration, err error) {
	b.BulkQueryCount.Add(1)
	b.BulkQuerySeeds.Add(int64(seeds))
	b.BulkQueryNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BulkQueryErrors.Add(1)
	}
}

// OnTopologicalSort implements MetricsObserver.
func (b *BasicMetricsObserver) OnTopologicalSort(_ int, cyclic bool, duration time.Duration) {
	b.TopoSortCount.Add(1)
	b.TopoSortTotalNanos.Add(duration.Nanoseconds())
	if cyclic {
		b.CyclicGraphs.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsObserver) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FinalizeCount:     b.FinalizeCount.Load(),
		FinalizedNodes:    b.FinalizedNodes.Load(),
		FinalizedEdges:    b.FinalizedEdges.Load(),
		BulkQueryCount:    b.BulkQueryCount.Load(),
		BulkQueryErrors:   b.BulkQueryErrors.Load(),
		BulkQuerySeeds:    b.BulkQuerySeeds.Load(),
		BulkQueryAvgNanos: avg(b.BulkQueryNanos.Load(), b.BulkQueryCount.Load()),
		TopoSortCount:     b.TopoSortCount.Load(),
		CyclicGraphs:      b.CyclicGraphs.Load(),
		TopoSortAvgNanos:  avg(b.TopoSortTotalNanos.Load(), b.TopoSortCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsObserver state.
type BasicMetricsStats struct {
	FinalizeCount     int64
	FinalizedNodes    int64
	FinalizedEdges    int64
	BulkQueryCount    int64
	BulkQueryErrors   int64
	BulkQuerySeeds    int64
	BulkQueryAvgNanos int64
	TopoSortCount     int64
	CyclicGraphs      int64
	TopoSortAvgNanos  int64
}
