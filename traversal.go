package weft

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/weft/internal/visited"
	"github.com/hupe1980/weft/model"
)

// reach runs a breadth-first expansion from seeds along next and returns
// every node reached, seeds included. The visited set's mark list doubles
// as the BFS queue.
func (g *Graph) reach(seeds []model.NodeIndex, next func(model.NodeIndex) []model.NodeIndex) *roaring.Bitmap {
	vs := visited.Get(g.NodeCount())
	defer visited.Put(vs)

	for _, s := range seeds {
		vs.Visit(s)
	}
	for head := 0; head < vs.Len(); head++ {
		for _, v := range next(vs.Marked()[head]) {
			vs.Visit(v)
		}
	}

	rb := roaring.New()
	for _, idx := range vs.Marked() {
		rb.Add(uint32(idx))
	}
	return rb
}

func (g *Graph) checkIndexes(idx []model.NodeIndex) error {
	for _, i := range idx {
		if err := g.checkIndex(i); err != nil {
			return err
		}
	}
	return nil
}

// Ancestors returns every node that can reach seed, excluding seed itself.
func (g *Graph) Ancestors(seed model.NodeIndex) (*NodeSet, error) {
	if err := g.checkIndex(seed); err != nil {
		return nil, err
	}
	rb := g.reach([]model.NodeIndex{seed}, g.InNeighbors)
	rb.Remove(uint32(seed))
	return newNodeSetFromBitmap(rb), nil
}

// Descendants returns every node reachable from seed, excluding seed itself.
func (g *Graph) Descendants(seed model.NodeIndex) (*NodeSet, error) {
	if err := g.checkIndex(seed); err != nil {
		return nil, err
	}
	rb := g.reach([]model.NodeIndex{seed}, g.OutNeighbors)
	rb.Remove(uint32(seed))
	return newNodeSetFromBitmap(rb), nil
}

// Roots returns every node without incoming edges. Isolated nodes are roots.
func (g *Graph) Roots() *NodeSet {
	rb := roaring.New()
	for i := 0; i < g.NodeCount(); i++ {
		if g.inOffsets[i] == g.inOffsets[i+1] {
			rb.Add(uint32(i))
		}
	}
	return newNodeSetFromBitmap(rb)
}

// Leaves returns every node without outgoing edges. Isolated nodes are leaves.
func (g *Graph) Leaves() *NodeSet {
	rb := roaring.New()
	for i := 0; i < g.NodeCount(); i++ {
		if g.outOffsets[i] == g.outOffsets[i+1] {
			rb.Add(uint32(i))
		}
	}
	return newNodeSetFromBitmap(rb)
}

// HasParents reports whether idx has at least one incoming edge.
func (g *Graph) HasParents(idx model.NodeIndex) bool {
	return g.InDegree(idx) > 0
}

// HasChildren reports whether idx has at least one outgoing edge.
func (g *Graph) HasChildren(idx model.NodeIndex) bool {
	return g.OutDegree(idx) > 0
}

// LeavesUnder returns the leaves reachable from any seed.
// A seed that is itself a leaf is included.
func (g *Graph) LeavesUnder(seeds ...model.NodeIndex) (*NodeSet, error) {
	if err := g.checkIndexes(seeds); err != nil {
		return nil, err
	}
	rb := g.reach(seeds, g.OutNeighbors)
	rb.And(g.Leaves().bitmap())
	return newNodeSetFromBitmap(rb), nil
}

// RootsOver returns the roots that reach any seed.
// A seed that is itself a root is included.
func (g *Graph) RootsOver(seeds ...model.NodeIndex) (*NodeSet, error) {
	if err := g.checkIndexes(seeds); err != nil {
		return nil, err
	}
	rb := g.reach(seeds, g.InNeighbors)
	rb.And(g.Roots().bitmap())
	return newNodeSetFromBitmap(rb), nil
}

// LeastCommonParents returns the members of selected that have no direct
// parent inside selected.
func (g *Graph) LeastCommonParents(selected ...model.NodeIndex) (*NodeSet, error) {
	if err := g.checkIndexes(selected); err != nil {
		return nil, err
	}
	sel := NewNodeSet(selected...)

	rb := roaring.New()
	for idx := range sel.Iter() {
		top := true
		for _, p := range g.InNeighbors(idx) {
			if sel.Contains(p) {
				top = false
				break
			}
		}
		if top {
			rb.Add(uint32(idx))
		}
	}
	return newNodeSetFromBitmap(rb), nil
}

// Subgraph returns the graph induced by seed and its descendants. Nodes
// keep their relative order; edges and weights leaving that set are kept,
// edges entering it from outside are dropped.
func (g *Graph) Subgraph(seed model.NodeIndex) (*Graph, error) {
	if err := g.checkIndex(seed); err != nil {
		return nil, err
	}
	keep := g.reach([]model.NodeIndex{seed}, g.OutNeighbors)

	b := NewBuilder(
		WithCapacity(int(keep.GetCardinality())),
		WithBuilderLogger(g.logger),
		WithBuilderMetrics(g.metrics),
	)
	it := keep.Iterator()
	for it.HasNext() {
		id, _ := g.ids.Resolve(model.NodeIndex(it.Next()))
		b.AddNode(id)
	}

	it = keep.Iterator()
	for it.HasNext() {
		u := model.NodeIndex(it.Next())
		from, _ := g.ids.Resolve(u)
		for _, v := range g.OutNeighbors(u) {
			to, _ := g.ids.Resolve(v)
			if w, ok := g.Weight(u, v); ok {
				b.AddWeightedEdge(from, to, w)
			} else {
				b.AddEdge(from, to)
			}
		}
	}
	return b.Finalize(), nil
}

// AncestorsOf is Ancestors keyed by external id. Results are in index order.
func (g *Graph) AncestorsOf(id string) ([]string, error) {
	idx, err := g.lookup(id)
	if err != nil {
		return nil, err
	}
	set, err := g.Ancestors(idx)
	if err != nil {
		return nil, err
	}
	return g.ResolveAll(set.Slice())
}

// DescendantsOf is Descendants keyed by external id. Results are in index order.
func (g *Graph) DescendantsOf(id string) ([]string, error) {
	idx, err := g.lookup(id)
	if err != nil {
		return nil, err
	}
	set, err := g.Descendants(idx)
	if err != nil {
		return nil, err
	}
	return g.ResolveAll(set.Slice())
}
