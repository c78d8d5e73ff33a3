package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDAGEdgesPointForward(t *testing.T) {
	rng := NewRNG(4711)

	edges := rng.DAG(50, 500)

	assert.Len(t, edges, 500)
	for _, e := range edges {
		assert.Less(t, e.From, e.To)
		assert.Less(t, int(e.To), 50)
	}
}

func TestDigraphDeterministicPerSeed(t *testing.T) {
	a := NewRNG(7).Digraph(20, 100)
	b := NewRNG(7).Digraph(20, 100)

	assert.Equal(t, a, b)
}

func TestShuffleKeepsElements(t *testing.T) {
	rng := NewRNG(1)
	edges := rng.DAG(10, 30)

	shuffled := rng.Shuffle(edges)

	assert.ElementsMatch(t, edges, shuffled)
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"n0", "n1", "n2"}, IDs(3))
}
