package revert

import "github.com/gnoverse/revflow/flow"

// Pruner rewrites every registered graph so that call sites whose resolved
// target provably always reverts lead straight to the graph's own revert
// sentinel. It runs only after the analyzer's state table is frozen; keys
// left Unknown can only come from unresolved recursion, so they are
// treated as reverting.
type Pruner struct {
	reg    *flow.Registry
	states map[flow.Key]State
}

// NewPruner prepares a pruner over a frozen state table.
func NewPruner(reg *flow.Registry, states map[flow.Key]State) *Pruner {
	return &Pruner{reg: reg, states: states}
}

// Run rewrites every registered graph in place. Running it again on an
// already pruned registry changes nothing.
func (p *Pruner) Run() {
	for _, key := range p.reg.Keys() {
		p.pruneFlow(key, p.reg.Flow(key))
	}
}

func (p *Pruner) pruneFlow(key flow.Key, g *flow.Graph) {
	flow.BFS(g.Entry, func(node *flow.Node, push func(*flow.Node)) bool {
		if target, ok := callTarget(node, key.Contract); ok {
			switch p.stateOf(target) {
			case Unknown, AllPathsRevert:
				// Reroute the continuation to this graph's revert
				// sentinel. Everything past the call becomes unreachable
				// from entry without further semantic reasoning.
				for _, succ := range node.Succs {
					succ.DetachPred(node)
				}
				node.Succs = []*flow.Node{g.Revert}
				g.Revert.Preds = append(g.Revert.Preds, node)
				return true
			}
		}

		for _, succ := range node.Succs {
			push(succ)
		}
		return true
	})
}

func (p *Pruner) stateOf(key flow.Key) State {
	state, ok := p.states[key]
	if !ok {
		panic("revflow: call target not registered: " + key.String())
	}
	return state
}
