package weft

import (
	"slices"

	"github.com/hupe1980/weft/internal/visited"
	"github.com/hupe1980/weft/model"
)

// FindPath returns a shortest path (by edge count) from -> to, both ends
// included. Ties are broken by ascending neighbor index. It returns [from]
// when from == to and nil when to is unreachable.
func (g *Graph) FindPath(from, to model.NodeIndex) ([]model.NodeIndex, error) {
	if err := g.checkIndexes([]model.NodeIndex{from, to}); err != nil {
		return nil, err
	}
	if from == to {
		return []model.NodeIndex{from}, nil
	}

	vs := visited.Get(g.NodeCount())
	defer visited.Put(vs)

	parent := make(map[model.NodeIndex]model.NodeIndex)
	vs.Visit(from)
	for head := 0; head < vs.Len(); head++ {
		u := vs.Marked()[head]
		for _, v := range g.OutNeighbors(u) {
			if !vs.Visit(v) {
				continue
			}
			parent[v] = u
			if v == to {
				path := []model.NodeIndex{to}
				for cur := to; cur != from; {
					cur = parent[cur]
					path = append(path, cur)
				}
				slices.Reverse(path)
				return path, nil
			}
		}
	}
	return nil, nil
}

// FindAllPaths returns the simple paths from -> to, explored depth first in
// ascending neighbor order. At most limit paths are returned; limit <= 0
// means no limit. The number of simple paths can grow exponentially with
// the graph size.
func (g *Graph) FindAllPaths(from, to model.NodeIndex, limit int) ([][]model.NodeIndex, error) {
	if err := g.checkIndexes([]model.NodeIndex{from, to}); err != nil {
		return nil, err
	}

	var (
		paths     [][]model.NodeIndex
		path      []model.NodeIndex
		onPathSet = make(map[model.NodeIndex]struct{})
		walk      func(u model.NodeIndex) bool
	)

	walk = func(u model.NodeIndex) bool {
		path = append(path, u)
		onPathSet[u] = struct{}{}
		defer func() {
			path = path[:len(path)-1]
			delete(onPathSet, u)
		}()

		if u == to {
			paths = append(paths, slices.Clone(path))
			return limit <= 0 || len(paths) < limit
		}
		for _, v := range g.OutNeighbors(u) {
			if _, seen := onPathSet[v]; seen {
				continue
			}
			if !walk(v) {
				return false
			}
		}
		return true
	}
	walk(from)

	return paths, nil
}
