package weft

import "runtime"

const defaultParallelFinalizeThreshold = 1 << 16

type builderOptions struct {
	capacity                  int
	logger                    *Logger
	metrics                   MetricsObserver
	parallelFinalizeThreshold int
}

func defaultBuilderOptions() builderOptions {
	return builderOptions{
		logger:                    NoopLogger(),
		metrics:                   NoopMetricsObserver{},
		parallelFinalizeThreshold: defaultParallelFinalizeThreshold,
	}
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderOptions)

// WithCapacity pre-sizes the builder for the expected number of nodes.
func WithCapacity(nodes int) BuilderOption {
	return func(o *builderOptions) {
		o.capacity = nodes
	}
}

// WithBuilderLogger sets the logger used by the builder and the graphs it produces.
//
// If nil is passed, logging is disabled.
func WithBuilderLogger(l *Logger) BuilderOption {
	return func(o *builderOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithBuilderMetrics sets the metrics observer used by the builder and the graphs it produces.
func WithBuilderMetrics(m MetricsObserver) BuilderOption {
	return func(o *builderOptions) {
		if m == nil {
			m = NoopMetricsObserver{}
		}
		o.metrics = m
	}
}

// WithParallelFinalizeThreshold sets the node count above which Finalize
// sorts adjacency rows on multiple goroutines. n <= 0 always sorts serially.
func WithParallelFinalizeThreshold(n int) BuilderOption {
	return func(o *builderOptions) {
		o.parallelFinalizeThreshold = n
	}
}

type executorOptions struct {
	workers int
	logger  *Logger
	metrics MetricsObserver
}

func defaultExecutorOptions() executorOptions {
	return executorOptions{
		workers: runtime.GOMAXPROCS(0),
		logger:  NoopLogger(),
		metrics: NoopMetricsObserver{},
	}
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorOptions)

// WithWorkers sets the fixed worker count. n <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) ExecutorOption {
	return func(o *executorOptions) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithExecutorLogger sets the executor logger.
func WithExecutorLogger(l *Logger) ExecutorOption {
	return func(o *executorOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithExecutorMetrics sets the executor metrics observer.
func WithExecutorMetrics(m MetricsObserver) ExecutorOption {
	return func(o *executorOptions) {
		if m == nil {
			m = NoopMetricsObserver{}
		}
		o.metrics = m
	}
}
