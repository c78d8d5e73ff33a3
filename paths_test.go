package weft_test

import (
	"testing"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathGraph(t *testing.T) *weft.Graph {
	t.Helper()
	b := weft.NewBuilder()
	b.AddPath("a", "b", "c", "d")
	b.AddEdge("a", "c")
	b.AddEdge("a", "e")
	b.AddEdge("e", "d")
	b.AddNode("island")
	return b.Finalize() // a0 b1 c2 d3 e4 island5
}

func TestFindPath(t *testing.T) {
	g := pathGraph(t)

	path, err := g.FindPath(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []model.NodeIndex{0, 2, 3}, path)

	path, err = g.FindPath(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.NodeIndex{2}, path)

	path, err = g.FindPath(3, 0)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = g.FindPath(0, 5)
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = g.FindPath(0, 6)
	assert.ErrorIs(t, err, weft.ErrIndexOutOfRange)
}

func TestFindAllPaths(t *testing.T) {
	g := pathGraph(t)

	paths, err := g.FindAllPaths(0, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]model.NodeIndex{
		{0, 1, 2, 3},
		{0, 2, 3},
		{0, 4, 3},
	}, paths)

	paths, err = g.FindAllPaths(0, 3, 2)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	paths, err = g.FindAllPaths(3, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, paths)

	paths, err = g.FindAllPaths(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]model.NodeIndex{{1}}, paths)
}

func TestFindAllPaths_CycleTerminates(t *testing.T) {
	b := weft.NewBuilder()
	b.AddPath("a", "b", "c", "a")
	b.AddEdge("b", "d")
	g := b.Finalize()

	paths, err := g.FindAllPaths(0, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]model.NodeIndex{{0, 1, 3}}, paths)
}
