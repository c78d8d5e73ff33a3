package model

import (
	"fmt"
	"math"
)

// NodeIndex is a dense, zero-based node identifier assigned in first-seen order.
type NodeIndex uint32

// InvalidIndex is never allocated to a node.
const InvalidIndex NodeIndex = math.MaxUint32

// MaxNodes is the largest number of nodes a single graph can hold.
const MaxNodes = int(InvalidIndex)

// Edge is a directed edge between two interned nodes.
type Edge struct {
	From NodeIndex
	To   NodeIndex
}

// String returns a string representation of the Edge.
func (e Edge) String() string {
	return fmt.Sprintf("%d->%d", e.From, e.To)
}

// Key packs the edge into a single map key.
func (e Edge) Key() uint64 {
	return uint64(e.From)<<32 | uint64(e.To)
}

// EdgeFromKey is the inverse of Edge.Key.
func EdgeFromKey(k uint64) Edge {
	return Edge{From: NodeIndex(k >> 32), To: NodeIndex(k)}
}

// WeightedEdge is an edge together with its optional scalar weight.
type WeightedEdge struct {
	Edge
	Weight float64
}
