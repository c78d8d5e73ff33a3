package weft

import (
	"context"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/weft/model"
)

// TopologicalOrder returns the nodes ordered so that every edge points
// forward. Among nodes that are ready at the same time the smallest index
// goes first, which makes the order deterministic.
//
// It returns ErrCycleDetected if the graph contains a cycle (self-loops
// included). The result is computed once per graph and cached.
func (g *Graph) TopologicalOrder() ([]model.NodeIndex, error) {
	g.sortOnce()
	if g.topoErr != nil {
		return nil, g.topoErr
	}
	return slices.Clone(g.topoOrder), nil
}

// HasCycle reports whether the graph contains a directed cycle.
func (g *Graph) HasCycle() bool {
	g.sortOnce()
	return g.topoErr != nil
}

// FindCycle returns the nodes of one directed cycle in edge order starting
// at its smallest index, or nil if the graph is acyclic. The edge from the
// last node back to the first closes the cycle.
func (g *Graph) FindCycle() []model.NodeIndex {
	g.sortOnce()
	if g.topoErr == nil {
		return nil
	}

	// Nodes that Kahn's algorithm could not emit each keep at least one
	// predecessor that was not emitted either, so walking predecessors
	// inside that set must eventually revisit a node.
	remaining := roaring.New()
	remaining.AddRange(0, uint64(g.NodeCount()))
	for _, idx := range g.topoOrder {
		remaining.Remove(uint32(idx))
	}

	pos := make(map[model.NodeIndex]int)
	var path []model.NodeIndex
	u := model.NodeIndex(remaining.Minimum())
	for {
		if p, seen := pos[u]; seen {
			cycle := slices.Clone(path[p:])
			slices.Reverse(cycle)
			m := slices.Index(cycle, slices.Min(cycle))
			return slices.Concat(cycle[m:], cycle[:m])
		}
		pos[u] = len(path)
		path = append(path, u)
		for _, p := range g.InNeighbors(u) {
			if remaining.Contains(uint32(p)) {
				u = p
				break
			}
		}
	}
}

func (g *Graph) sortOnce() {
	g.topoOnce.Do(func() {
		start := time.Now()
		order, acyclic := g.kahn()
		g.topoOrder = order
		if !acyclic {
			g.topoErr = ErrCycleDetected
		}

		elapsed := time.Since(start)
		g.logger.LogTopologicalSort(context.Background(), g.NodeCount(), !acyclic, elapsed)
		g.metrics.OnTopologicalSort(g.NodeCount(), !acyclic, elapsed)
	})
}

// kahn emits nodes whose remaining in-degree is zero, smallest index first.
// It returns the emitted prefix and whether every node was emitted.
func (g *Graph) kahn() ([]model.NodeIndex, bool) {
	n := g.NodeCount()
	indeg := make([]int, n)
	ready := roaring.New()
	for i := 0; i < n; i++ {
		indeg[i] = g.inOffsets[i+1] - g.inOffsets[i]
		if indeg[i] == 0 {
			ready.Add(uint32(i))
		}
	}

	order := make([]model.NodeIndex, 0, n)
	for !ready.IsEmpty() {
		u := ready.Minimum()
		ready.Remove(u)
		order = append(order, model.NodeIndex(u))

		for _, v := range g.OutNeighbors(model.NodeIndex(u)) {
			indeg[v]--
			if indeg[v] == 0 {
				ready.Add(uint32(v))
			}
		}
	}
	return order, len(order) == n
}
