package flow

// BFS walks a graph breadth first from start. The visitor receives the
// current node and a push function for enqueueing successors; every node is
// visited at most once. Returning false abandons the whole search
// immediately, pending queue included.
func BFS(start *Node, visit func(n *Node, push func(*Node)) bool) {
	seen := map[*Node]bool{start: true}
	queue := []*Node{start}

	push := func(n *Node) {
		if !seen[n] {
			seen[n] = true
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if !visit(node, push) {
			return
		}
	}
}
