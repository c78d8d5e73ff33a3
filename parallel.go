package weft

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/weft/internal/pool"
	"github.com/hupe1980/weft/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hupe1980/weft"

// Executor runs bulk graph queries on a fixed pool of workers.
//
// Each distinct seed becomes one task on a shared queue, so idle workers
// keep pulling work until the batch is drained. Workers only read the
// graph; a Graph may be queried by several executors at once.
type Executor struct {
	opts executorOptions
	pool *pool.WorkerPool
}

// NewExecutor starts an executor. Call Close to stop its workers.
func NewExecutor(optFns ...ExecutorOption) *Executor {
	opts := defaultExecutorOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Executor{
		opts: opts,
		pool: pool.NewWorkerPool(opts.workers),
	}
}

// Workers returns the pool size.
func (e *Executor) Workers() int {
	return e.pool.Size()
}

// Close stops the workers after in-flight tasks finish. Idempotent.
func (e *Executor) Close() {
	e.pool.Close()
}

// AncestorsMany computes Ancestors for every seed in parallel.
//
// The result maps each distinct seed to its ancestor set and does not
// depend on scheduling. The call returns only after every dispatched task
// has finished. If any seed is out of range nothing is dispatched.
//
// ctx only stops the dispatch of further seeds; tasks already running are
// never interrupted. A cancelled call returns ctx.Err() and no results.
func (e *Executor) AncestorsMany(ctx context.Context, g *Graph, seeds []model.NodeIndex) (map[model.NodeIndex]*NodeSet, error) {
	return e.run(ctx, "ancestors", g, seeds, g.Ancestors)
}

// DescendantsMany computes Descendants for every seed in parallel.
// It behaves like AncestorsMany.
func (e *Executor) DescendantsMany(ctx context.Context, g *Graph, seeds []model.NodeIndex) (map[model.NodeIndex]*NodeSet, error) {
	return e.run(ctx, "descendants", g, seeds, g.Descendants)
}

func (e *Executor) run(
	ctx context.Context,
	kind string,
	g *Graph,
	seeds []model.NodeIndex,
	query func(model.NodeIndex) (*NodeSet, error),
) (_ map[model.NodeIndex]*NodeSet, err error) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Executor."+kind+"Many",
		trace.WithAttributes(
			attribute.String("kind", kind),
			attribute.Int("seeds", len(seeds)),
			attribute.Int("workers", e.pool.Size()),
			attribute.Int("nodes", g.NodeCount()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		elapsed := time.Since(start)
		e.opts.logger.LogBulkQuery(ctx, kind, len(seeds), e.pool.Size(), elapsed, err)
		e.opts.metrics.OnBulkQuery(kind, len(seeds), elapsed, err)
	}()

	if e.pool.Closed() {
		return nil, ErrExecutorClosed
	}
	if err := g.checkIndexes(seeds); err != nil {
		return nil, err
	}

	unique := slices.Clone(seeds)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	results := make([]*NodeSet, len(unique))

	var (
		wg        sync.WaitGroup
		submitErr error
	)
	for i, seed := range unique {
		wg.Add(1)
		submitErr = e.pool.Submit(ctx, func() {
			defer wg.Done()
			// seeds were validated above
			results[i], _ = query(seed)
		})
		if submitErr != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		if errors.Is(submitErr, pool.ErrClosed) {
			return nil, ErrExecutorClosed
		}
		return nil, submitErr
	}

	span.SetAttributes(attribute.Int("distinct_seeds", len(unique)))

	out := make(map[model.NodeIndex]*NodeSet, len(unique))
	for i, seed := range unique {
		out[seed] = results[i]
	}
	return out, nil
}

// AncestorsMany runs Executor.AncestorsMany on a temporary executor with
// one worker per CPU.
func (g *Graph) AncestorsMany(seeds []model.NodeIndex) (map[model.NodeIndex]*NodeSet, error) {
	ex := NewExecutor(WithExecutorLogger(g.logger), WithExecutorMetrics(g.metrics))
	defer ex.Close()
	return ex.AncestorsMany(context.Background(), g, seeds)
}

// DescendantsMany runs Executor.DescendantsMany on a temporary executor
// with one worker per CPU.
func (g *Graph) DescendantsMany(seeds []model.NodeIndex) (map[model.NodeIndex]*NodeSet, error) {
	ex := NewExecutor(WithExecutorLogger(g.logger), WithExecutorMetrics(g.metrics))
	defer ex.Close()
	return ex.DescendantsMany(context.Background(), g, seeds)
}
