package weft_test

import (
	"testing"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/model"
	"github.com/hupe1980/weft/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainABC(t *testing.T) *weft.Graph {
	t.Helper()
	b := weft.NewBuilder()
	b.AddEdge("A", "B")
	b.AddEdge("B", "C")
	return b.Finalize()
}

func TestScenario_Chain(t *testing.T) {
	g := chainABC(t)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	ids, err := g.ResolveAll(order)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, ids)

	anc, err := g.Ancestors(mustLookup(t, g, "C"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, idsOf(t, g, anc))

	assert.Equal(t, []string{"A"}, idsOf(t, g, g.Roots()))
	assert.Equal(t, []string{"C"}, idsOf(t, g, g.Leaves()))
}

func TestAncestorsDescendants_ExcludeSeed(t *testing.T) {
	b := weft.NewBuilder()
	b.AddEdge("a", "b")
	b.AddEdge("b", "a")
	b.AddEdge("b", "c")
	g := b.Finalize()

	a := mustLookup(t, g, "a")
	desc, err := g.Descendants(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, idsOf(t, g, desc))

	anc, err := g.Ancestors(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, idsOf(t, g, anc))
}

func TestAncestors_OutOfRange(t *testing.T) {
	g := chainABC(t)

	_, err := g.Ancestors(3)
	assert.ErrorIs(t, err, weft.ErrIndexOutOfRange)
	_, err = g.Descendants(100)
	assert.ErrorIs(t, err, weft.ErrIndexOutOfRange)
}

func TestRootsLeaves_IsolatedNode(t *testing.T) {
	b := weft.NewBuilder()
	b.AddNode("lonely")
	b.AddEdge("a", "b")
	g := b.Finalize()

	lonely := mustLookup(t, g, "lonely")
	assert.True(t, g.Roots().Contains(lonely))
	assert.True(t, g.Leaves().Contains(lonely))
	assert.False(t, g.HasParents(lonely))
	assert.False(t, g.HasChildren(lonely))
	assert.True(t, g.HasChildren(mustLookup(t, g, "a")))
	assert.True(t, g.HasParents(mustLookup(t, g, "b")))
}

func TestEmptyGraph(t *testing.T) {
	g := weft.NewBuilder().Finalize()

	assert.Equal(t, 0, g.NodeCount())
	assert.True(t, g.Roots().IsEmpty())
	assert.True(t, g.Leaves().IsEmpty())

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Empty(t, order)
	assert.False(t, g.HasCycle())
}

// diamond:  r -> x, r -> y, x -> z, y -> z, q -> y
func diamond(t *testing.T) *weft.Graph {
	t.Helper()
	b := weft.NewBuilder()
	b.AddEdge("r", "x")
	b.AddEdge("r", "y")
	b.AddEdge("x", "z")
	b.AddEdge("y", "z")
	b.AddEdge("q", "y")
	return b.Finalize()
}

func TestLeavesUnderRootsOver(t *testing.T) {
	g := diamond(t)

	leaves, err := g.LeavesUnder(mustLookup(t, g, "x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, idsOf(t, g, leaves))

	leaves, err = g.LeavesUnder(mustLookup(t, g, "z"))
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, idsOf(t, g, leaves))

	roots, err := g.RootsOver(mustLookup(t, g, "z"))
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "q"}, idsOf(t, g, roots))

	roots, err = g.RootsOver(mustLookup(t, g, "x"), mustLookup(t, g, "q"))
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "q"}, idsOf(t, g, roots))

	_, err = g.LeavesUnder(99)
	assert.ErrorIs(t, err, weft.ErrIndexOutOfRange)
}

func TestLeastCommonParents(t *testing.T) {
	g := diamond(t)

	sel := []model.NodeIndex{mustLookup(t, g, "x"), mustLookup(t, g, "y"), mustLookup(t, g, "z")}
	top, err := g.LeastCommonParents(sel...)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, idsOf(t, g, top))

	top, err = g.LeastCommonParents(mustLookup(t, g, "r"), mustLookup(t, g, "z"))
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "z"}, idsOf(t, g, top))
}

func TestSubgraph(t *testing.T) {
	b := weft.NewBuilder()
	b.AddEdge("q", "y")
	b.AddEdge("r", "x")
	b.AddWeightedEdge("x", "z", 4)
	b.AddEdge("y", "z")
	g := b.Finalize()

	sub, err := g.Subgraph(mustLookup(t, g, "r"))
	require.NoError(t, err)

	assert.Equal(t, []string{"r", "x", "z"}, sub.IDs())
	assert.Equal(t, 2, sub.EdgeCount())
	w, ok := sub.Weight(mustLookup(t, sub, "x"), mustLookup(t, sub, "z"))
	assert.True(t, ok)
	assert.Equal(t, 4.0, w)

	// the source graph is untouched
	assert.Equal(t, 5, g.NodeCount())
}

func TestAncestorsOfDescendantsOf(t *testing.T) {
	g := diamond(t)

	anc, err := g.AncestorsOf("z")
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "x", "y", "q"}, anc)

	desc, err := g.DescendantsOf("q")
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, desc)

	_, err = g.AncestorsOf("nope")
	assert.ErrorIs(t, err, weft.ErrNodeNotFound)
	_, err = g.DescendantsOf("nope")
	assert.ErrorIs(t, err, weft.ErrNodeNotFound)
}

// v ∈ descendants(u) ⇔ u ∈ ancestors(v)
func TestProperty_AncestorDescendantDuality(t *testing.T) {
	rng := testutil.NewRNG(11)
	const nodes = 120
	g := buildGraph(t, nodes, rng.Digraph(nodes, 300))

	desc := make([]*weft.NodeSet, nodes)
	anc := make([]*weft.NodeSet, nodes)
	for i := 0; i < nodes; i++ {
		var err error
		desc[i], err = g.Descendants(model.NodeIndex(i))
		require.NoError(t, err)
		anc[i], err = g.Ancestors(model.NodeIndex(i))
		require.NoError(t, err)
	}

	for u := 0; u < nodes; u++ {
		for v := 0; v < nodes; v++ {
			assert.Equal(t,
				desc[u].Contains(model.NodeIndex(v)),
				anc[v].Contains(model.NodeIndex(u)),
				"u=%d v=%d", u, v)
		}
	}
}

func BenchmarkDescendants(b *testing.B) {
	rng := testutil.NewRNG(3)
	const nodes = 100_000
	g := buildGraph(b, nodes, rng.DAG(nodes, 400_000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Descendants(model.NodeIndex(i % 1000))
	}
}
