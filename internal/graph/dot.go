package graph

import (
	"fmt"
	"strings"
)

// ToDOT serializes the graph in Graphviz DOT format for external rendering.
// Node labels are the identity labels (citekey, or DOI for external nodes);
// external nodes are drawn dashed.
func (g *Graph) ToDOT() string {
	var sb strings.Builder
	sb.WriteString("digraph citationweb {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, fontname=\"Helvetica\"];\n")

	for _, id := range g.Nodes() {
		attrs := fmt.Sprintf("label=%s", quoteDOT(id.String()))
		if id.Entry() == nil {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&sb, "  %s [%s];\n", quoteDOT(id.Key()), attrs)
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "  %s -> %s;\n", quoteDOT(e.Source), quoteDOT(e.Target))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// quoteDOT quotes and escapes a DOT identifier.
func quoteDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
