// Package model defines the identity types shared by every weft package.
//
// # Identity Types
//
//   - NodeIndex: dense, zero-based internal node identifier (uint32)
//   - Edge: directed (From, To) pair of node indexes
//   - WeightedEdge: an Edge with its scalar weight
//
// External identifiers are plain strings. A NodeIndex is only meaningful
// for the builder or graph that allocated it.
package model
