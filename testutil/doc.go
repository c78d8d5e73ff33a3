// Package testutil provides testing utilities for weft.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for random edge lists.
//
//	rng := testutil.NewRNG(seed)
//	edges := rng.DAG(1000, 4000)    // acyclic, From < To
//	edges = rng.Digraph(1000, 4000) // may contain cycles and self-loops
//	ids := testutil.IDs(1000)       // "n0", "n1", ...
package testutil
