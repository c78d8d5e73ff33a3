// Package visited provides a dense, resettable visited set for graph traversals.
package visited

import (
	"sync"

	"github.com/hupe1980/weft/model"
)

// VisitedSet tracks visited nodes using a bitset and a dirty list for fast reset.
type VisitedSet struct {
	bits  []uint64
	dirty []model.NodeIndex
}

// New creates a new visited set sized for capacity nodes.
func New(capacity int) *VisitedSet {
	return &VisitedSet{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]model.NodeIndex, 0, 128),
	}
}

// Visit marks a node as visited and reports whether it was newly marked.
func (v *VisitedSet) Visit(id model.NodeIndex) bool {
	wordIdx := int(id >> 6)
	bitMask := uint64(1) << (id & 63)

	if wordIdx >= len(v.bits) {
		v.grow(wordIdx + 1)
	}

	if v.bits[wordIdx]&bitMask != 0 {
		return false
	}
	v.bits[wordIdx] |= bitMask
	v.dirty = append(v.dirty, id)
	return true
}

// Visited returns true if the node has been visited.
func (v *VisitedSet) Visited(id model.NodeIndex) bool {
	wordIdx := int(id >> 6)
	if wordIdx >= len(v.bits) {
		return false
	}
	return v.bits[wordIdx]&(uint64(1)<<(id&63)) != 0
}

// Len returns the number of nodes visited since the last Reset.
func (v *VisitedSet) Len() int {
	return len(v.dirty)
}

// Marked returns the visited nodes in visit order.
// The slice is only valid until the next Visit or Reset.
func (v *VisitedSet) Marked() []model.NodeIndex {
	return v.dirty
}

// Reset clears the visited status for all nodes visited in the current session.
func (v *VisitedSet) Reset() {
	for _, id := range v.dirty {
		v.bits[id>>6] &^= uint64(1) << (id & 63)
	}
	v.dirty = v.dirty[:0]
}

// EnsureCapacity ensures the visited set can hold at least the given number of nodes.
func (v *VisitedSet) EnsureCapacity(capacity int) {
	words := (capacity + 63) / 64
	if words > len(v.bits) {
		v.grow(words)
	}
}

func (v *VisitedSet) grow(newLen int) {
	newCap := len(v.bits) * 2
	if newCap < newLen {
		newCap = newLen
	}

	newBits := make([]uint64, newCap)
	copy(newBits, v.bits)
	v.bits = newBits
}

var pool = sync.Pool{
	New: func() any { return New(0) },
}

// Get returns a cleared set from the shared pool with room for capacity nodes.
func Get(capacity int) *VisitedSet {
	v := pool.Get().(*VisitedSet)
	v.EnsureCapacity(capacity)
	return v
}

// Put resets v and returns it to the shared pool.
func Put(v *VisitedSet) {
	v.Reset()
	pool.Put(v)
}
