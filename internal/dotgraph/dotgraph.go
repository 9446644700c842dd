// Package dotgraph renders a dependency graph snapshot as Graphviz DOT text, for the REPL's
// "graph <path>" diagnostic command. Output format is not guaranteed stable across versions.
package dotgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/K-dizzled/isa-interprerter/internal/depgraph"
)

// Render writes g as a DOT digraph, clustered by thread in ascending thread_id order and with
// nodes listed in insertion order within each cluster. Each node's depends-on edges are rendered
// source -> target, where source is the dependent node and target is the dependency it awaits.
func Render(g *depgraph.Graph) string {
	var b strings.Builder

	ids := g.Nodes()

	byThread := make(map[int][]depgraph.NodeID)
	threads := make([]int, 0)

	for _, id := range ids {
		t, ok := g.ThreadID(id)
		if !ok {
			continue
		}

		if _, seen := byThread[t]; !seen {
			threads = append(threads, t)
		}

		byThread[t] = append(byThread[t], id)
	}

	sort.Ints(threads)

	fmt.Fprintln(&b, "digraph {")

	for clusterIdx, thread := range threads {
		fmt.Fprintf(&b, "  subgraph cluster_%d {\n", clusterIdx)
		fmt.Fprintf(&b, "    label=\"Thread #%d\";\n", thread)
		fmt.Fprintf(&b, "    node [style=filled, color=lightgrey];\n")

		for _, id := range byThread[thread] {
			fmt.Fprintf(&b, "    %q;\n", g.DotID(id))
		}

		for _, id := range byThread[thread] {
			for _, dep := range g.DependsOn(id) {
				fmt.Fprintf(&b, "    %q -> %q;\n", g.DotID(id), g.DotID(dep))
			}
		}

		fmt.Fprintln(&b, "  }")
	}

	fmt.Fprintln(&b, "}")

	return b.String()
}
