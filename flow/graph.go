package flow

// Graph is the control flow graph of one callable body.
//
// Entry has no predecessors outside the graph. Exit models the normal
// return, Revert the abort-with-rollback; after construction only the
// pruner adds edges reaching them.
type Graph struct {
	Entry  *Node
	Exit   *Node
	Revert *Node

	// Nodes lists every node of the body, sentinels included, in creation
	// order.
	Nodes []*Node
}

// NewGraph allocates a graph with fresh sentinel nodes from the arena.
func NewGraph(arena *Arena) *Graph {
	g := &Graph{
		Entry:  arena.NewNode(),
		Exit:   arena.NewNode(),
		Revert: arena.NewNode(),
	}
	g.Nodes = append(g.Nodes, g.Entry, g.Exit, g.Revert)
	return g
}

// AddNode allocates a body node from the arena and records it in the graph.
func (g *Graph) AddNode(arena *Arena) *Node {
	node := arena.NewNode()
	g.Nodes = append(g.Nodes, node)
	return node
}
