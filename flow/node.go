package flow

import "github.com/gnoverse/revflow/decl"

// CallSite annotates a node carrying exactly one function call statement.
// Callee is the textually referenced declaration; binding to the override
// live at the call site happens during analysis, in the context of the
// calling contract.
type CallSite struct {
	Callee decl.Function
	Lookup decl.LookupKind
}

// Invocation annotates a node carrying exactly one modifier invocation.
type Invocation struct {
	Modifier decl.Modifier
	Lookup   decl.LookupKind
}

// Node is a single vertex of a callable's control flow graph. Edges are
// non-owning references to nodes of the same arena.
type Node struct {
	id int

	Preds []*Node
	Succs []*Node

	// At most one of Call and Invocation is set; a node carrying both is
	// an upstream bug and aborts the analysis.
	Call       *CallSite
	Invocation *Invocation

	// Placeholder marks the modifier-body statement where control passes
	// to the next modifier or the wrapped function body. A placeholder is
	// never the graph's exit node.
	Placeholder bool
}

// ID returns the node's stable index within its arena.
func (n *Node) ID() int {
	return n.id
}

// Connect adds a control flow edge from n to succ.
func (n *Node) Connect(succ *Node) {
	n.Succs = append(n.Succs, succ)
	succ.Preds = append(succ.Preds, n)
}

// DetachPred removes every occurrence of pred from n's predecessor list,
// preserving the order of the remaining entries.
func (n *Node) DetachPred(pred *Node) {
	kept := n.Preds[:0]
	for _, p := range n.Preds {
		if p != pred {
			kept = append(kept, p)
		}
	}
	n.Preds = kept
}
