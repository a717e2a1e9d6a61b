package flow

// Arena owns every CFG node created for one program. Pointers returned by
// NewNode stay valid for the arena's whole lifetime; edges between nodes
// are non-owning references into the arena.
type Arena struct {
	nodes []*Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewNode allocates a fresh node owned by the arena.
func (a *Arena) NewNode() *Node {
	node := &Node{id: len(a.nodes)}
	a.nodes = append(a.nodes, node)
	return node
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return len(a.nodes)
}
