package weft_test

import (
	"context"
	"testing"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/model"
	"github.com/hupe1980/weft/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Parallel results equal sequential ones for any pool size.
func TestProperty_ParallelSequentialEquivalence(t *testing.T) {
	rng := testutil.NewRNG(77)
	const nodes = 400
	g := buildGraph(t, nodes, rng.Digraph(nodes, 1200))

	seeds := make([]model.NodeIndex, 0, 150)
	for range 150 {
		seeds = append(seeds, model.NodeIndex(rng.Intn(nodes)))
	}

	for _, workers := range []int{1, 2, 3, 8, 32} {
		ex := weft.NewExecutor(weft.WithWorkers(workers))

		anc, err := ex.AncestorsMany(context.Background(), g, seeds)
		require.NoError(t, err)
		desc, err := ex.DescendantsMany(context.Background(), g, seeds)
		require.NoError(t, err)
		ex.Close()

		for _, s := range seeds {
			wantA, _ := g.Ancestors(s)
			wantD, _ := g.Descendants(s)
			require.Contains(t, anc, s)
			assert.True(t, wantA.Equal(anc[s]), "ancestors of %d with %d workers", s, workers)
			assert.True(t, wantD.Equal(desc[s]), "descendants of %d with %d workers", s, workers)
		}
	}
}

func TestExecutor_DuplicateSeedsCollapse(t *testing.T) {
	g := chainABC(t)
	ex := weft.NewExecutor(weft.WithWorkers(2))
	defer ex.Close()

	res, err := ex.DescendantsMany(context.Background(), g, []model.NodeIndex{0, 0, 1, 0})
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, []model.NodeIndex{1, 2}, res[0].Slice())
	assert.Equal(t, []model.NodeIndex{2}, res[1].Slice())
}

func TestExecutor_EmptySeeds(t *testing.T) {
	g := chainABC(t)
	ex := weft.NewExecutor()
	defer ex.Close()

	res, err := ex.AncestorsMany(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Positive(t, ex.Workers())
}

func TestExecutor_InvalidSeedFailsWholeCall(t *testing.T) {
	g := chainABC(t)
	m := &weft.BasicMetricsObserver{}
	ex := weft.NewExecutor(weft.WithWorkers(2), weft.WithExecutorMetrics(m))
	defer ex.Close()

	res, err := ex.AncestorsMany(context.Background(), g, []model.NodeIndex{0, 7})
	assert.ErrorIs(t, err, weft.ErrIndexOutOfRange)
	assert.Nil(t, res)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.BulkQueryCount)
	assert.Equal(t, int64(1), stats.BulkQueryErrors)
}

func TestExecutor_Closed(t *testing.T) {
	g := chainABC(t)
	ex := weft.NewExecutor(weft.WithWorkers(1))
	ex.Close()
	ex.Close()

	_, err := ex.DescendantsMany(context.Background(), g, []model.NodeIndex{0})
	assert.ErrorIs(t, err, weft.ErrExecutorClosed)
}

func TestExecutor_CancelledContext(t *testing.T) {
	rng := testutil.NewRNG(8)
	g := buildGraph(t, 2000, rng.DAG(2000, 8000))

	seeds := make([]model.NodeIndex, 2000)
	for i := range seeds {
		seeds[i] = model.NodeIndex(i)
	}

	ex := weft.NewExecutor(weft.WithWorkers(1))
	defer ex.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := ex.DescendantsMany(ctx, g, seeds)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)

	// the executor stays usable
	res, err = ex.DescendantsMany(context.Background(), g, seeds[:3])
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestGraph_ManyConvenience(t *testing.T) {
	g := diamond(t)
	z := mustLookup(t, g, "z")
	r := mustLookup(t, g, "r")

	anc, err := g.AncestorsMany([]model.NodeIndex{z})
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "x", "y", "q"}, idsOf(t, g, anc[z]))

	desc, err := g.DescendantsMany([]model.NodeIndex{r})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, idsOf(t, g, desc[r]))
}

func BenchmarkDescendantsMany(b *testing.B) {
	rng := testutil.NewRNG(3)
	const nodes = 50_000
	g := buildGraph(b, nodes, rng.DAG(nodes, 200_000))

	seeds := make([]model.NodeIndex, 256)
	for i := range seeds {
		seeds[i] = model.NodeIndex(rng.Intn(nodes))
	}

	ex := weft.NewExecutor()
	defer ex.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ex.DescendantsMany(context.Background(), g, seeds)
	}
}
