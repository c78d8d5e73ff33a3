package weft

import (
	"fmt"
	"iter"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/weft/model"
)

// NodeSet is a set of node indexes backed by a compressed bitmap.
//
// Sets returned by graph queries are owned by the caller. Set algebra
// methods never modify their operands.
type NodeSet struct {
	rb *roaring.Bitmap
}

// NewNodeSet creates a set containing the given indexes.
func NewNodeSet(idx ...model.NodeIndex) *NodeSet {
	s := &NodeSet{rb: roaring.New()}
	for _, i := range idx {
		s.rb.Add(uint32(i))
	}
	return s
}

func newNodeSetFromBitmap(rb *roaring.Bitmap) *NodeSet {
	rb.RunOptimize()
	return &NodeSet{rb: rb}
}

func (s *NodeSet) bitmap() *roaring.Bitmap {
	if s == nil || s.rb == nil {
		return roaring.New()
	}
	return s.rb
}

// Contains reports whether idx is in the set.
func (s *NodeSet) Contains(idx model.NodeIndex) bool {
	return s.bitmap().Contains(uint32(idx))
}

// Len returns the number of elements.
func (s *NodeSet) Len() int {
	return int(s.bitmap().GetCardinality())
}

// IsEmpty returns true if the set is empty.
func (s *NodeSet) IsEmpty() bool {
	return s.bitmap().IsEmpty()
}

// Slice returns the elements in ascending order.
func (s *NodeSet) Slice() []model.NodeIndex {
	rb := s.bitmap()
	out := make([]model.NodeIndex, 0, rb.GetCardinality())
	it := rb.Iterator()
	for it.HasNext() {
		out = append(out, model.NodeIndex(it.Next()))
	}
	return out
}

// Iter returns an iterator over the elements in ascending order.
func (s *NodeSet) Iter() iter.Seq[model.NodeIndex] {
	return func(yield func(model.NodeIndex) bool) {
		it := s.bitmap().Iterator()
		for it.HasNext() {
			if !yield(model.NodeIndex(it.Next())) {
				return
			}
		}
	}
}

// Union returns s ∪ other.
func (s *NodeSet) Union(other *NodeSet) *NodeSet {
	return &NodeSet{rb: roaring.Or(s.bitmap(), other.bitmap())}
}

// Intersect returns s ∩ other.
func (s *NodeSet) Intersect(other *NodeSet) *NodeSet {
	return &NodeSet{rb: roaring.And(s.bitmap(), other.bitmap())}
}

// Difference returns s \ other.
func (s *NodeSet) Difference(other *NodeSet) *NodeSet {
	return &NodeSet{rb: roaring.AndNot(s.bitmap(), other.bitmap())}
}

// Equal reports whether both sets hold the same elements.
func (s *NodeSet) Equal(other *NodeSet) bool {
	return s.bitmap().Equals(other.bitmap())
}

// Clone returns a deep copy of the set.
func (s *NodeSet) Clone() *NodeSet {
	return &NodeSet{rb: s.bitmap().Clone()}
}

// String renders the set as {a, b, c}.
func (s *NodeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for idx := range s.Iter() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%d", idx)
	}
	sb.WriteByte('}')
	return sb.String()
}
