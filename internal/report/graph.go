package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteDOT writes the import graph in Graphviz DOT. Edges on a reported
// cycle are drawn red.
func WriteDOT(w io.Writer, r *Report) error {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontname=\"Helvetica\", fontsize=10];\n")

	inCycle := cycleNodes(r)
	for _, n := range graphNodes(r) {
		if inCycle[n] {
			fmt.Fprintf(&b, "  %q [color=red];\n", n)
		} else {
			fmt.Fprintf(&b, "  %q;\n", n)
		}
	}
	for _, e := range r.Graph.Edges {
		if e.InCycle {
			fmt.Fprintf(&b, "  %q -> %q [color=red, penwidth=2];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&b, "  %q -> %q;\n", e.From, e.To)
		}
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMermaid writes the import graph as a Mermaid flowchart.
func WriteMermaid(w io.Writer, r *Report) error {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	nodes := graphNodes(r)
	ids := make(map[string]string, len(nodes))
	for i, n := range nodes {
		ids[n] = fmt.Sprintf("n%d", i)
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", ids[n], strings.ReplaceAll(n, `"`, "#quot;"))
	}

	var cycleLinks []string
	for i, e := range r.Graph.Edges {
		fmt.Fprintf(&b, "  %s --> %s\n", ids[e.From], ids[e.To])
		if e.InCycle {
			cycleLinks = append(cycleLinks, fmt.Sprint(i))
		}
	}
	if len(cycleLinks) > 0 {
		fmt.Fprintf(&b, "  linkStyle %s stroke:red,stroke-width:2px\n", strings.Join(cycleLinks, ","))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// graphNodes returns every file that takes part in an edge, plus orphans,
// sorted.
func graphNodes(r *Report) []string {
	seen := make(map[string]bool)
	for _, e := range r.Graph.Edges {
		seen[e.From] = true
		seen[e.To] = true
	}
	for _, o := range r.Graph.Orphans {
		seen[o] = true
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func cycleNodes(r *Report) map[string]bool {
	out := make(map[string]bool)
	for _, c := range r.Graph.Cycles {
		for _, f := range c.Files {
			out[f] = true
		}
	}
	return out
}
