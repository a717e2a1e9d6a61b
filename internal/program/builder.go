package program

import (
	"github.com/gnoverse/revflow/decl"
	"github.com/gnoverse/revflow/flow"
)

// Builder constructs flow graphs from fixture bodies. It implements
// flow.Builder.
//
// Bodies are linear chains: every statement becomes one node linked to the
// previous one. revert and return terminate the chain at the corresponding
// sentinel; require forks an extra edge to the revert sentinel; the chain
// falls through to exit after the last statement.
type Builder struct{}

// NewBuilder returns a builder for fixture programs.
func NewBuilder() *Builder {
	return &Builder{}
}

// FunctionFlow builds the graph of one implemented callable body.
func (b *Builder) FunctionFlow(arena *flow.Arena, callable decl.Callable) *flow.Graph {
	g := flow.NewGraph(arena)
	cur := g.Entry

	for _, stmt := range bodyOf(callable) {
		switch stmt.Kind {
		case StmtRevert:
			cur.Connect(g.Revert)
			return g
		case StmtReturn:
			cur.Connect(g.Exit)
			return g
		case StmtRequire:
			node := g.AddNode(arena)
			cur.Connect(node)
			node.Connect(g.Revert)
			cur = node
		case StmtCall:
			node := g.AddNode(arena)
			node.Call = &flow.CallSite{Callee: stmt.Callee, Lookup: stmt.Lookup}
			cur.Connect(node)
			cur = node
		case StmtInvoke:
			node := g.AddNode(arena)
			node.Invocation = &flow.Invocation{Modifier: stmt.Modifier, Lookup: stmt.Lookup}
			cur.Connect(node)
			cur = node
		case StmtPlaceholder:
			node := g.AddNode(arena)
			node.Placeholder = true
			cur.Connect(node)
			cur = node
		default:
			node := g.AddNode(arena)
			cur.Connect(node)
			cur = node
		}
	}

	cur.Connect(g.Exit)
	return g
}

func bodyOf(callable decl.Callable) []Statement {
	switch c := callable.(type) {
	case *Function:
		return c.body
	case *Modifier:
		return c.body
	default:
		panic("revflow: flow requested for a foreign declaration")
	}
}
