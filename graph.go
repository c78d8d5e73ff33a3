package weft

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
	"sync"

	"github.com/hupe1980/weft/internal/interner"
	"github.com/hupe1980/weft/model"
)

// Graph is an immutable directed graph with dense node indexes.
//
// Outgoing and incoming adjacency are stored in compressed sparse row form.
// Every row is sorted ascending and free of duplicates, and the two
// directions are exact mirrors of each other.
//
// A Graph is safe for concurrent use.
type Graph struct {
	ids *interner.Interner

	outOffsets []int
	outTargets []model.NodeIndex
	inOffsets  []int
	inSources  []model.NodeIndex

	// keyed by model.Edge.Key
	weights map[uint64]float64

	logger  *Logger
	metrics MetricsObserver

	topoOnce  sync.Once
	topoOrder []model.NodeIndex
	topoErr   error
}

// NewGraph assembles a graph from raw parts.
//
// ids[i] is the external id of node i. adjacency[i] lists the outgoing
// neighbors of node i in any order; duplicates are dropped. Incoming
// adjacency is derived. Every weight must refer to an edge in adjacency.
func NewGraph(ids []string, adjacency [][]model.NodeIndex, weights []model.WeightedEdge) (*Graph, error) {
	if len(adjacency) > len(ids) {
		return nil, &IndexOutOfRangeError{Index: model.NodeIndex(len(ids)), Len: len(ids)}
	}

	in := interner.New(len(ids))
	for _, id := range ids {
		if _, created := in.Intern(id); !created {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, id)
		}
	}

	n := len(ids)
	rows := make([][]model.NodeIndex, n)
	for i, row := range adjacency {
		for _, t := range row {
			if int(t) >= n {
				return nil, &IndexOutOfRangeError{Index: t, Len: n}
			}
		}
		rows[i] = sortDedup(slices.Clone(row))
	}

	g := &Graph{
		ids:     in,
		weights: make(map[uint64]float64, len(weights)),
		logger:  NoopLogger(),
		metrics: NoopMetricsObserver{},
	}
	g.outOffsets, g.outTargets = packRows(rows)
	g.inOffsets, g.inSources = transpose(n, g.outOffsets, g.outTargets)

	for _, w := range weights {
		if int(w.From) >= n || !g.HasEdge(w.From, w.To) {
			return nil, fmt.Errorf("%w: %s", ErrEdgeNotFound, w.Edge)
		}
		g.weights[w.Key()] = w.Weight
	}

	return g, nil
}

// transpose derives incoming CSR rows from outgoing ones. Sources are
// visited in ascending order, so every incoming row comes out sorted.
func transpose(n int, offsets []int, targets []model.NodeIndex) ([]int, []model.NodeIndex) {
	inOffsets := make([]int, n+1)
	for _, t := range targets {
		inOffsets[t+1]++
	}
	for i := 1; i <= n; i++ {
		inOffsets[i] += inOffsets[i-1]
	}

	pos := slices.Clone(inOffsets[:n])
	sources := make([]model.NodeIndex, len(targets))
	for u := 0; u < n; u++ {
		for _, t := range targets[offsets[u]:offsets[u+1]] {
			sources[pos[t]] = model.NodeIndex(u)
			pos[t]++
		}
	}
	return inOffsets, sources
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return g.ids.Len()
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.outTargets)
}

// Contains reports whether idx is a valid node index.
func (g *Graph) Contains(idx model.NodeIndex) bool {
	return int(idx) < g.NodeCount()
}

func (g *Graph) checkIndex(idx model.NodeIndex) error {
	if !g.Contains(idx) {
		return &IndexOutOfRangeError{Index: idx, Len: g.NodeCount()}
	}
	return nil
}

func (g *Graph) mustIndex(idx model.NodeIndex) {
	if err := g.checkIndex(idx); err != nil {
		panic(err)
	}
}

// OutNeighbors returns the sorted direct successors of idx.
//
// The returned slice is shared with the graph and must not be modified.
// It panics with an *IndexOutOfRangeError if idx is not a node.
func (g *Graph) OutNeighbors(idx model.NodeIndex) []model.NodeIndex {
	g.mustIndex(idx)
	lo, hi := g.outOffsets[idx], g.outOffsets[idx+1]
	return g.outTargets[lo:hi:hi]
}

// InNeighbors returns the sorted direct predecessors of idx.
//
// The returned slice is shared with the graph and must not be modified.
// It panics with an *IndexOutOfRangeError if idx is not a node.
func (g *Graph) InNeighbors(idx model.NodeIndex) []model.NodeIndex {
	g.mustIndex(idx)
	lo, hi := g.inOffsets[idx], g.inOffsets[idx+1]
	return g.inSources[lo:hi:hi]
}

// OutDegree returns the number of successors of idx.
func (g *Graph) OutDegree(idx model.NodeIndex) int {
	return len(g.OutNeighbors(idx))
}

// InDegree returns the number of predecessors of idx.
func (g *Graph) InDegree(idx model.NodeIndex) int {
	return len(g.InNeighbors(idx))
}

// HasEdge reports whether the edge from -> to exists.
// Out-of-range indexes simply yield false.
func (g *Graph) HasEdge(from, to model.NodeIndex) bool {
	if !g.Contains(from) || !g.Contains(to) {
		return false
	}
	_, ok := slices.BinarySearch(g.OutNeighbors(from), to)
	return ok
}

// Weight returns the weight recorded for from -> to.
// The boolean is false when the edge carries no weight.
func (g *Graph) Weight(from, to model.NodeIndex) (float64, bool) {
	w, ok := g.weights[model.Edge{From: from, To: to}.Key()]
	return w, ok
}

// Resolve returns the external id of idx.
func (g *Graph) Resolve(idx model.NodeIndex) (string, error) {
	if err := g.checkIndex(idx); err != nil {
		return "", err
	}
	id, _ := g.ids.Resolve(idx)
	return id, nil
}

// Lookup returns the index of an external id.
func (g *Graph) Lookup(id string) (model.NodeIndex, bool) {
	return g.ids.Lookup(id)
}

func (g *Graph) lookup(id string) (model.NodeIndex, error) {
	idx, ok := g.ids.Lookup(id)
	if !ok {
		return 0, &NodeNotFoundError{ID: id}
	}
	return idx, nil
}

// IDs returns all external ids in index order.
func (g *Graph) IDs() []string {
	return g.ids.IDs()
}

// ResolveAll maps indexes to external ids, preserving order.
func (g *Graph) ResolveAll(idx []model.NodeIndex) ([]string, error) {
	out := make([]string, len(idx))
	for i, v := range idx {
		id, err := g.Resolve(v)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

// Edges iterates all edges ordered by (From, To).
func (g *Graph) Edges() iter.Seq[model.Edge] {
	return func(yield func(model.Edge) bool) {
		for u := 0; u < g.NodeCount(); u++ {
			for _, v := range g.outTargets[g.outOffsets[u]:g.outOffsets[u+1]] {
				if !yield(model.Edge{From: model.NodeIndex(u), To: v}) {
					return
				}
			}
		}
	}
}

// WeightedEdges returns all weighted edges ordered by (From, To).
func (g *Graph) WeightedEdges() []model.WeightedEdge {
	out := make([]model.WeightedEdge, 0, len(g.weights))
	for k, w := range g.weights {
		out = append(out, model.WeightedEdge{Edge: model.EdgeFromKey(k), Weight: w})
	}
	slices.SortFunc(out, func(a, b model.WeightedEdge) int {
		return cmp.Compare(a.Key(), b.Key())
	})
	return out
}

// Equal reports whether both graphs have the same ids in the same order,
// the same edges and the same weights.
func (g *Graph) Equal(other *Graph) bool {
	if g.NodeCount() != other.NodeCount() || g.EdgeCount() != other.EdgeCount() {
		return false
	}
	if !slices.Equal(g.IDs(), other.IDs()) {
		return false
	}
	if !slices.Equal(g.outOffsets, other.outOffsets) || !slices.Equal(g.outTargets, other.outTargets) {
		return false
	}
	if len(g.weights) != len(other.weights) {
		return false
	}
	for k, w := range g.weights {
		ow, ok := other.weights[k]
		if !ok || math.Float64bits(ow) != math.Float64bits(w) {
			return false
		}
	}
	return true
}
