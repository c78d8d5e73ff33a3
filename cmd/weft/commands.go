package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/model"
	"github.com/hupe1980/weft/snapshot"
	"github.com/spf13/cobra"
)

var errNoPath = errors.New("no path")

func (a *app) load(ctx context.Context, name string) (*weft.Graph, error) {
	return snapshot.Load(ctx, a.store, name)
}

func (a *app) lookupAll(g *weft.Graph, ids []string) ([]model.NodeIndex, error) {
	out := make([]model.NodeIndex, len(ids))
	for i, id := range ids {
		idx, ok := g.Lookup(id)
		if !ok {
			return nil, &weft.NodeNotFoundError{ID: id}
		}
		out[i] = idx
	}
	return out, nil
}

func (a *app) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <edges.tsv|-> <name>",
		Short: "Build a graph from a tab-separated edge list and store it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			b := weft.NewBuilder(a.builderOptions()...)
			if err := readEdges(r, b); err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			g := b.Finalize()

			if err := snapshot.Save(cmd.Context(), a.store, args[1], g, a.codecOpts...); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "stored %s: %d nodes, %d edges\n", args[1], g.NodeCount(), g.EdgeCount())
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List stored graphs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}
			names, err := a.store.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <name>",
		Short: "Print graph statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "nodes:\t%d\n", g.NodeCount())
			fmt.Fprintf(a.out, "edges:\t%d\n", g.EdgeCount())
			fmt.Fprintf(a.out, "weighted:\t%d\n", len(g.WeightedEdges()))
			fmt.Fprintf(a.out, "roots:\t%d\n", g.Roots().Len())
			fmt.Fprintf(a.out, "leaves:\t%d\n", g.Leaves().Len())
			fmt.Fprintf(a.out, "cyclic:\t%t\n", g.HasCycle())
			return nil
		},
	}
}

func (a *app) dumpCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "dump <name>",
		Short: "Print the adjacency table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return g.Dump(a.out, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum rows (0 = all)")
	return cmd
}

func (a *app) topoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topo <name>",
		Short: "Print the nodes in topological order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			order, err := g.TopologicalOrder()
			if err != nil {
				if errors.Is(err, weft.ErrCycleDetected) {
					return fmt.Errorf("%w: %s", err, formatCycle(g, g.FindCycle()))
				}
				return err
			}
			ids, err := g.ResolveAll(order)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(a.out, id)
			}
			return nil
		},
	}
}

func (a *app) cycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle <name>",
		Short: "Report whether the graph contains a cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !g.HasCycle() {
				fmt.Fprintln(a.out, "acyclic")
				return nil
			}
			fmt.Fprintf(a.out, "cycle: %s\n", formatCycle(g, g.FindCycle()))
			return nil
		},
	}
}

func formatCycle(g *weft.Graph, cycle []model.NodeIndex) string {
	if len(cycle) == 0 {
		return ""
	}
	ids, err := g.ResolveAll(append(cycle, cycle[0]))
	if err != nil {
		return err.Error()
	}
	return strings.Join(ids, " -> ")
}

func (a *app) ancestorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors <name> <id>...",
		Short: "Print every node that reaches each id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.bulk(cmd.Context(), args[0], args[1:], (*weft.Executor).AncestorsMany)
		},
	}
}

func (a *app) descendantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descendants <name> <id>...",
		Short: "Print every node reachable from each id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.bulk(cmd.Context(), args[0], args[1:], (*weft.Executor).DescendantsMany)
		},
	}
}

type bulkQuery func(*weft.Executor, context.Context, *weft.Graph, []model.NodeIndex) (map[model.NodeIndex]*weft.NodeSet, error)

// bulk runs query for all ids on one executor and prints "id: a b c" lines in argument order.
func (a *app) bulk(ctx context.Context, name string, ids []string, query bulkQuery) error {
	g, err := a.load(ctx, name)
	if err != nil {
		return err
	}
	seeds, err := a.lookupAll(g, ids)
	if err != nil {
		return err
	}

	exec := a.newExecutor()
	defer exec.Close()

	results, err := query(exec, ctx, g, seeds)
	if err != nil {
		return err
	}
	for i, seed := range seeds {
		names, err := g.ResolveAll(results[seed].Slice())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s: %s\n", ids[i], strings.Join(names, " "))
	}
	return nil
}

func (a *app) pathCmd() *cobra.Command {
	var (
		all   bool
		limit int
	)
	cmd := &cobra.Command{
		Use:   "path <name> <from> <to>",
		Short: "Print the shortest path (or all simple paths) between two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ends, err := a.lookupAll(g, args[1:])
			if err != nil {
				return err
			}

			var paths [][]model.NodeIndex
			if all {
				paths, err = g.FindAllPaths(ends[0], ends[1], limit)
			} else {
				var p []model.NodeIndex
				p, err = g.FindPath(ends[0], ends[1])
				if p != nil {
					paths = append(paths, p)
				}
			}
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("%w from %s to %s", errNoPath, args[1], args[2])
			}

			for _, p := range paths {
				ids, err := g.ResolveAll(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, strings.Join(ids, " -> "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every simple path")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum paths with --all (0 = unlimited)")
	return cmd
}
