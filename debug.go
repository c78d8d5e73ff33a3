package weft

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// String returns a one-line summary.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph{nodes: %d, edges: %d, weighted: %d}", g.NodeCount(), g.EdgeCount(), len(g.weights))
}

// Dump writes one line per node with its children, at most limit nodes
// (limit <= 0 writes all).
//
//	NODE    CHILDREN
//	fetch   parse
//	parse   render
//	render
func (g *Graph) Dump(w io.Writer, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tCHILDREN")

	n := g.NodeCount()
	if limit > 0 && limit < n {
		n = limit
	}

	ids := g.ids.IDs()
	for i := 0; i < n; i++ {
		children := g.outTargets[g.outOffsets[i]:g.outOffsets[i+1]]
		names := make([]string, len(children))
		for j, c := range children {
			names[j] = ids[c]
		}
		fmt.Fprintf(tw, "%s\t%s\n", ids[i], strings.Join(names, ", "))
	}
	if n < g.NodeCount() {
		fmt.Fprintf(tw, "...\t(%d more)\n", g.NodeCount()-n)
	}
	return tw.Flush()
}
