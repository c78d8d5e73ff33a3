package weft_test

import (
	"testing"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/model"
	"github.com/hupe1980/weft/testutil"
	"github.com/stretchr/testify/require"
)

// buildGraph declares nodes n0..n{nodes-1} in order, then adds edges.
func buildGraph(t testing.TB, nodes int, edges []model.Edge) *weft.Graph {
	t.Helper()
	b := weft.NewBuilder(weft.WithCapacity(nodes))
	for _, id := range testutil.IDs(nodes) {
		b.AddNode(id)
	}
	for _, e := range edges {
		b.AddEdge(testutil.ID(e.From), testutil.ID(e.To))
	}
	g := b.Finalize()
	require.Equal(t, nodes, g.NodeCount())
	return g
}

func mustLookup(t testing.TB, g *weft.Graph, id string) model.NodeIndex {
	t.Helper()
	idx, ok := g.Lookup(id)
	require.True(t, ok, "missing node %q", id)
	return idx
}

func idsOf(t testing.TB, g *weft.Graph, s *weft.NodeSet) []string {
	t.Helper()
	ids, err := g.ResolveAll(s.Slice())
	require.NoError(t, err)
	return ids
}
