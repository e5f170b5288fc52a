package network

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes the network as an undirected graphviz graph. The fdp
// engine gives the force-directed layout; nodes are filled with their role
// color and edges stroked with their category color.
func (n *Network) WriteDOT(w io.Writer) error {

	var b strings.Builder
	b.WriteString("graph slnet {\n")
	b.WriteString("  layout=fdp;\n")
	b.WriteString("  overlap=false;\n")
	b.WriteString("  node [style=filled, fontsize=10];\n")

	for _, node := range n.SortedNodes() {
		fmt.Fprintf(&b, "  %s [fillcolor=%q, tooltip=%q];\n",
			quoteID(node.ID), node.Color, string(node.Role))
	}

	for _, e := range n.Edges {
		fmt.Fprintf(&b, "  %s -- %s [color=%q, tooltip=%q];\n",
			quoteID(e.Source), quoteID(e.Target), categoryColor(e.Category), e.Category)
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Gene symbols can contain characters DOT identifiers do not allow
// (e.g. HLA-A, drug names with spaces), so quote everything.
func quoteID(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `\"`) + `"`
}
