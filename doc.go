// Package weft builds and analyzes large directed graphs.
//
// A graph is assembled incrementally with a Builder from arbitrary string
// identifiers. Edges may reference nodes that have not been declared yet;
// both endpoints are interned on first sight. Finalize freezes the builder
// into an immutable Graph with sorted, de-duplicated adjacency stored in a
// compressed sparse row layout for both directions.
//
// # Quick Start
//
//	b := weft.NewBuilder()
//	b.AddEdge("fetch", "parse")
//	b.AddEdge("parse", "render")
//	g := b.Finalize()
//
//	order, err := g.TopologicalOrder()
//	if errors.Is(err, weft.ErrCycleDetected) {
//	    // ...
//	}
//
//	c, _ := g.Lookup("render")
//	anc, _ := g.Ancestors(c) // {fetch, parse}
//
// # Node Indexes
//
// Every identifier maps to a dense model.NodeIndex allocated in first-seen
// order. Indexes are stable for the lifetime of one Graph and are the
// currency of all algorithms; use Graph.Resolve and Graph.Lookup to move
// between indexes and identifiers.
//
// # Parallel Queries
//
// An Executor fans bulk ancestor/descendant queries across a fixed worker
// pool. Workers share the Graph read-only; results are keyed by seed and
// independent of scheduling:
//
//	ex := weft.NewExecutor(weft.WithWorkers(8))
//	defer ex.Close()
//	res, err := ex.DescendantsMany(ctx, g, seeds)
//
// # Persistence
//
// The core package performs no I/O. The codec package encodes a Graph into
// a versioned, compressed byte stream; the snapshot and blobstore packages
// move those bytes to local disk, S3, MinIO, Badger or Redis.
//
// # Thread Safety
//
// A Builder is single-owner. A Graph is immutable and safe for concurrent
// use; its lazily computed cycle status is initialized exactly once.
package weft
