package flow

import (
	"fmt"
	"io"
)

// WriteDot renders the graph in GraphViz DOT format, one node per line
// followed by the edge list. Sentinels are drawn as double circles; call
// sites and placeholders carry their annotation as the label.
func (g *Graph) WriteDot(w io.Writer, name string) {
	fmt.Fprintf(w, "digraph %q {\n", name)
	for _, node := range g.Nodes {
		shape := ""
		if node == g.Entry || node == g.Exit || node == g.Revert {
			shape = ",shape=doublecircle"
		}
		fmt.Fprintf(w, "  n%d [label=%q%s];\n", node.ID(), g.label(node), shape)
	}
	for _, node := range g.Nodes {
		for _, succ := range node.Succs {
			fmt.Fprintf(w, "  n%d -> n%d;\n", node.ID(), succ.ID())
		}
	}
	fmt.Fprintln(w, "}")
}

func (g *Graph) label(node *Node) string {
	switch {
	case node == g.Entry:
		return "entry"
	case node == g.Exit:
		return "exit"
	case node == g.Revert:
		return "revert"
	case node.Call != nil:
		return "call " + node.Call.Callee.Name()
	case node.Invocation != nil:
		return "invoke " + node.Invocation.Modifier.Name()
	case node.Placeholder:
		return "_"
	default:
		return fmt.Sprintf("n%d", node.ID())
	}
}
