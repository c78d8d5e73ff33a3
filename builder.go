package weft

import (
	"context"
	"runtime"
	"slices"
	"time"

	"github.com/hupe1980/weft/internal/interner"
	"github.com/hupe1980/weft/model"
	"golang.org/x/sync/errgroup"
)

// finalizeChunk is the number of adjacency rows sorted per goroutine.
const finalizeChunk = 4096

// Builder accumulates nodes and edges and freezes them into a Graph.
//
// Edges may name nodes that were never added; both endpoints are interned
// on first sight. Adding the same edge twice has no further effect.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	opts    builderOptions
	ids     *interner.Interner
	out     [][]model.NodeIndex
	in      [][]model.NodeIndex
	weights map[uint64]float64
}

// NewBuilder creates an empty builder.
func NewBuilder(optFns ...BuilderOption) *Builder {
	opts := defaultBuilderOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	b := &Builder{opts: opts}
	b.reset()
	return b
}

// NewBuilderFrom reopens a frozen graph for editing.
// The builder starts with a deep copy of g; g itself is never modified.
func NewBuilderFrom(g *Graph, optFns ...BuilderOption) *Builder {
	opts := defaultBuilderOptions()
	opts.logger = g.logger
	opts.metrics = g.metrics
	for _, fn := range optFns {
		fn(&opts)
	}

	n := g.NodeCount()
	b := &Builder{
		opts:    opts,
		ids:     g.ids.Clone(),
		out:     make([][]model.NodeIndex, n),
		in:      make([][]model.NodeIndex, n),
		weights: make(map[uint64]float64, len(g.weights)),
	}
	for i := 0; i < n; i++ {
		idx := model.NodeIndex(i)
		b.out[i] = slices.Clone(g.OutNeighbors(idx))
		b.in[i] = slices.Clone(g.InNeighbors(idx))
	}
	for k, w := range g.weights {
		b.weights[k] = w
	}
	return b
}

func (b *Builder) reset() {
	b.ids = interner.New(b.opts.capacity)
	b.out = make([][]model.NodeIndex, 0, b.opts.capacity)
	b.in = make([][]model.NodeIndex, 0, b.opts.capacity)
	b.weights = make(map[uint64]float64)
}

// intern is the only path that allocates node indexes. Adjacency rows grow
// in lock-step with the id table.
func (b *Builder) intern(id string) model.NodeIndex {
	idx, created := b.ids.Intern(id)
	if created {
		b.out = append(b.out, nil)
		b.in = append(b.in, nil)
	}
	return idx
}

// AddNode interns id and returns its index. Idempotent.
func (b *Builder) AddNode(id string) model.NodeIndex {
	return b.intern(id)
}

// AddEdge records the edge from -> to, interning unseen endpoints.
// Self-loops are allowed.
func (b *Builder) AddEdge(from, to string) model.Edge {
	f := b.intern(from)
	t := b.intern(to)
	b.out[f] = append(b.out[f], t)
	b.in[t] = append(b.in[t], f)
	return model.Edge{From: f, To: t}
}

// AddWeightedEdge records the edge from -> to with a weight.
// Re-adding an edge replaces its weight.
func (b *Builder) AddWeightedEdge(from, to string, weight float64) model.Edge {
	e := b.AddEdge(from, to)
	b.weights[e.Key()] = weight
	return e
}

// AddPath adds an edge between every consecutive pair of ids.
// A single id is added as a node.
func (b *Builder) AddPath(ids ...string) {
	if len(ids) == 1 {
		b.AddNode(ids[0])
		return
	}
	for i := 1; i < len(ids); i++ {
		b.AddEdge(ids[i-1], ids[i])
	}
}

// Lookup returns the index assigned to id so far.
func (b *Builder) Lookup(id string) (model.NodeIndex, bool) {
	return b.ids.Lookup(id)
}

// NodeCount returns the number of interned nodes.
func (b *Builder) NodeCount() int {
	return b.ids.Len()
}

// Finalize freezes the builder into an immutable Graph.
//
// Adjacency rows are sorted and de-duplicated once here. The builder is left
// empty and may be reused; the returned graph shares no memory with it.
func (b *Builder) Finalize() *Graph {
	start := time.Now()

	parallel := b.opts.parallelFinalizeThreshold > 0 && len(b.out) >= b.opts.parallelFinalizeThreshold
	sortRows(b.out, parallel)
	sortRows(b.in, parallel)

	g := &Graph{
		ids:     b.ids,
		weights: b.weights,
		logger:  b.opts.logger,
		metrics: b.opts.metrics,
	}
	g.outOffsets, g.outTargets = packRows(b.out)
	g.inOffsets, g.inSources = packRows(b.in)

	b.reset()

	elapsed := time.Since(start)
	b.opts.logger.LogFinalize(context.Background(), g.NodeCount(), g.EdgeCount(), elapsed)
	b.opts.metrics.OnFinalize(g.NodeCount(), g.EdgeCount(), elapsed)

	return g
}

func sortRows(rows [][]model.NodeIndex, parallel bool) {
	if !parallel {
		for i := range rows {
			rows[i] = sortDedup(rows[i])
		}
		return
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(rows); start += finalizeChunk {
		end := min(start+finalizeChunk, len(rows))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				rows[i] = sortDedup(rows[i])
			}
			return nil
		})
	}
	_ = eg.Wait()
}

func sortDedup(row []model.NodeIndex) []model.NodeIndex {
	if len(row) < 2 {
		return row
	}
	slices.Sort(row)
	return slices.Compact(row)
}

// packRows flattens rows into a CSR offsets/targets pair.
func packRows(rows [][]model.NodeIndex) ([]int, []model.NodeIndex) {
	offsets := make([]int, len(rows)+1)
	total := 0
	for i, r := range rows {
		offsets[i] = total
		total += len(r)
	}
	offsets[len(rows)] = total

	flat := make([]model.NodeIndex, 0, total)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	return offsets, flat
}
