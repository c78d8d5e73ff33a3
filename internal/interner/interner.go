package interner

import (
	"errors"
	"fmt"

	"github.com/hupe1980/weft/model"
)

// ErrIndexOutOfRange is returned by Resolve for an index that was never allocated.
var ErrIndexOutOfRange = errors.New("node index out of range")

// Interner is a bijection between external ids and NodeIndex values.
// Indexes are allocated sequentially in first-seen order and never reused.
//
// Not safe for concurrent use.
type Interner struct {
	index map[string]model.NodeIndex
	ids   []string
}

// New creates an interner with room for capacity ids.
func New(capacity int) *Interner {
	if capacity < 0 {
		capacity = 0
	}
	return &Interner{
		index: make(map[string]model.NodeIndex, capacity),
		ids:   make([]string, 0, capacity),
	}
}

// Intern returns the index of id, allocating the next sequential index
// the first time id is seen. The boolean reports whether a new index was allocated.
func (in *Interner) Intern(id string) (model.NodeIndex, bool) {
	if idx, ok := in.index[id]; ok {
		return idx, false
	}
	if len(in.ids) >= model.MaxNodes {
		panic(fmt.Sprintf("interner: node limit %d reached", model.MaxNodes))
	}
	idx := model.NodeIndex(len(in.ids))
	in.index[id] = idx
	in.ids = append(in.ids, id)
	return idx, true
}

// Lookup returns the index of id without allocating.
func (in *Interner) Lookup(id string) (model.NodeIndex, bool) {
	idx, ok := in.index[id]
	return idx, ok
}

// Resolve returns the external id for idx.
func (in *Interner) Resolve(idx model.NodeIndex) (string, error) {
	if int(idx) >= len(in.ids) {
		return "", fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, idx, len(in.ids))
	}
	return in.ids[idx], nil
}

// Len returns the number of interned ids.
func (in *Interner) Len() int {
	return len(in.ids)
}

// IDs returns a copy of all ids in index order.
func (in *Interner) IDs() []string {
	out := make([]string, len(in.ids))
	copy(out, in.ids)
	return out
}

// Clone returns an independent copy.
func (in *Interner) Clone() *Interner {
	c := New(len(in.ids))
	for _, id := range in.ids {
		c.Intern(id)
	}
	return c
}

// Reset drops all ids.
func (in *Interner) Reset() {
	in.index = make(map[string]model.NodeIndex)
	in.ids = nil
}
