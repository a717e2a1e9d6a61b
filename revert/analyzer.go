package revert

import "github.com/gnoverse/revflow/flow"

// Analyzer computes the revert state of every registry key with a worklist
// fixpoint. A traversal that reaches a call into a still-Unknown key is
// abandoned on the spot and the key parked in the wake set; it is requeued
// once the blocker resolves. Keys still Unknown after the worklist drains
// are exactly the unresolved recursive cycles.
type Analyzer struct {
	reg    *flow.Registry
	states map[flow.Key]State
}

// NewAnalyzer prepares an analyzer with every key set to Unknown.
func NewAnalyzer(reg *flow.Registry) *Analyzer {
	states := make(map[flow.Key]State, len(reg.Keys()))
	for _, key := range reg.Keys() {
		states[key] = Unknown
	}
	return &Analyzer{reg: reg, states: states}
}

// Run drives the fixpoint to exhaustion and returns the frozen state
// table. The registry's graphs are only read.
func (a *Analyzer) Run() map[flow.Key]State {
	pending := newWorklist(a.reg.Keys())
	wake := make(map[flow.Key][]flow.Key)

	for {
		item, ok := pending.pop()
		if !ok {
			break
		}
		if a.states[item] != Unknown {
			continue
		}

		state, blocker, blocked := a.classify(item)
		if blocked {
			// Dependency recorded; the key stays Unknown until the
			// blocker resolves and requeues it.
			wake[blocker] = appendWaiter(wake[blocker], item)
			continue
		}

		a.states[item] = state
		for _, waiter := range wake[item] {
			if a.states[waiter] == Unknown {
				pending.push(waiter)
			}
		}
		delete(wake, item)
	}

	return a.states
}

// classify traverses one graph from its entry. blocked reports that a call
// into the returned blocker was found while the blocker is still Unknown;
// in that case the traversal stopped immediately and state is meaningless.
func (a *Analyzer) classify(item flow.Key) (state State, blocker flow.Key, blocked bool) {
	g := a.reg.Flow(item)
	var foundExit, foundPlaceholder bool

	flow.BFS(g.Entry, func(node *flow.Node, push func(*flow.Node)) bool {
		if node == g.Exit {
			foundExit = true
		}
		if node.Placeholder {
			if node == g.Exit {
				panic("revflow: placeholder node cannot be the exit node")
			}
			foundPlaceholder = true
		}

		if target, ok := callTarget(node, item.Contract); ok {
			switch a.stateOf(target) {
			case Unknown:
				blocker, blocked = target, true
				return false
			case AllPathsRevert:
				// Control never continues past this call.
				return true
			case ModifierRevertPassthrough:
				if node.Invocation == nil {
					panic("revflow: function call target in modifier passthrough state")
				}
			case HasNonRevertingPath:
			}
		}

		for _, succ := range node.Succs {
			push(succ)
		}
		return true
	})

	if blocked {
		return Unknown, blocker, true
	}
	switch {
	case foundExit && foundPlaceholder:
		return ModifierRevertPassthrough, flow.Key{}, false
	case foundExit:
		return HasNonRevertingPath, flow.Key{}, false
	default:
		return AllPathsRevert, flow.Key{}, false
	}
}

func (a *Analyzer) stateOf(key flow.Key) State {
	state, ok := a.states[key]
	if !ok {
		panic("revflow: call target not registered: " + key.String())
	}
	return state
}

func appendWaiter(waiters []flow.Key, waiter flow.Key) []flow.Key {
	for _, w := range waiters {
		if w == waiter {
			return waiters
		}
	}
	return append(waiters, waiter)
}

// worklist is a FIFO key queue with set semantics: a key already queued is
// not queued twice.
type worklist struct {
	queue  []flow.Key
	queued map[flow.Key]bool
}

func newWorklist(keys []flow.Key) *worklist {
	w := &worklist{queued: make(map[flow.Key]bool, len(keys))}
	for _, key := range keys {
		w.push(key)
	}
	return w
}

func (w *worklist) push(key flow.Key) {
	if !w.queued[key] {
		w.queued[key] = true
		w.queue = append(w.queue, key)
	}
}

func (w *worklist) pop() (flow.Key, bool) {
	if len(w.queue) == 0 {
		return flow.Key{}, false
	}
	key := w.queue[0]
	w.queue = w.queue[1:]
	delete(w.queued, key)
	return key, true
}
