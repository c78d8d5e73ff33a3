package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/weft/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// DAG returns edges random edges over nodes nodes with From < To, so the
// result is always acyclic. Duplicates are possible. nodes must be >= 2.
func (r *RNG) DAG(nodes, edges int) []model.Edge {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Edge, edges)
	for i := range out {
		a := r.rand.Intn(nodes)
		b := r.rand.Intn(nodes - 1)
		if b >= a {
			b++
		}
		if a > b {
			a, b = b, a
		}
		out[i] = model.Edge{From: model.NodeIndex(a), To: model.NodeIndex(b)}
	}
	return out
}

// Digraph returns edges uniformly random edges over nodes nodes.
// Cycles, self-loops and duplicates are possible.
func (r *RNG) Digraph(nodes, edges int) []model.Edge {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Edge, edges)
	for i := range out {
		out[i] = model.Edge{
			From: model.NodeIndex(r.rand.Intn(nodes)),
			To:   model.NodeIndex(r.rand.Intn(nodes)),
		}
	}
	return out
}

// Shuffle returns a shuffled copy of edges.
func (r *RNG) Shuffle(edges []model.Edge) []model.Edge {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Edge, len(edges))
	copy(out, edges)
	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// IDs returns n external ids "n0".."n{n-1}".
func IDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = ID(model.NodeIndex(i))
	}
	return ids
}

// ID returns the external id used by IDs for idx.
func ID(idx model.NodeIndex) string {
	return fmt.Sprintf("n%d", idx)
}
