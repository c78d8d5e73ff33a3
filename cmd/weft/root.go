package main

import (
	"io"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/blobstore"
	"github.com/hupe1980/weft/codec"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	workers    int

	cfg        Config
	logger     *weft.Logger
	metrics    *weft.BasicMetricsObserver
	store      blobstore.BlobStore
	closeStore func() error
	codecOpts  []codec.Option

	out    io.Writer
	errOut io.Writer
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:     out,
		errOut:  errOut,
		metrics: &weft.BasicMetricsObserver{},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "weft",
		Short:         "Build, store and query directed dependency graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.IntVarP(&a.workers, "workers", "w", 0, "worker goroutines for bulk queries (0 = config or one per CPU)")

	root.AddCommand(
		a.buildCmd(),
		a.listCmd(),
		a.statsCmd(),
		a.dumpCmd(),
		a.topoCmd(),
		a.cycleCmd(),
		a.ancestorsCmd(),
		a.descendantsCmd(),
		a.pathCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.workers > 0 {
		cfg.Executor.Workers = a.workers
	}
	a.cfg = cfg

	if a.logger, err = newLogger(cfg.Log, a.errOut); err != nil {
		return err
	}
	if a.codecOpts, err = codecOptions(cfg.Codec); err != nil {
		return err
	}

	// a pre-set store (tests) wins over the configured one
	if a.store != nil {
		return nil
	}
	a.store, a.closeStore, err = openStore(cmd.Context(), cfg.Store, a.logger)
	return err
}

// close releases the store and logs the collected metrics.
func (a *app) close() error {
	if a.logger != nil {
		stats := a.metrics.GetStats()
		a.logger.Debug("weft metrics",
			"finalized", stats.FinalizeCount,
			"bulk_queries", stats.BulkQueryCount,
			"bulk_query_errors", stats.BulkQueryErrors,
			"topo_sorts", stats.TopoSortCount,
		)
	}
	if a.closeStore == nil {
		return nil
	}
	err := a.closeStore()
	a.closeStore = nil
	return err
}

func (a *app) builderOptions() []weft.BuilderOption {
	return []weft.BuilderOption{
		weft.WithBuilderLogger(a.logger),
		weft.WithBuilderMetrics(a.metrics),
	}
}

func (a *app) newExecutor() *weft.Executor {
	return weft.NewExecutor(
		weft.WithWorkers(a.cfg.Executor.Workers),
		weft.WithExecutorLogger(a.logger),
		weft.WithExecutorMetrics(a.metrics),
	)
}
