// Package revflow is the revert propagation stage of the contract compiler
// middle end. It classifies every function and modifier body by whether all
// execution paths revert, then rewrites the flow graphs so that call sites
// into always-reverting targets structurally lead to the revert sentinel.
package revflow

import (
	"go.uber.org/zap"

	"github.com/gnoverse/revflow/flow"
	"github.com/gnoverse/revflow/revert"
)

// Result carries the frozen classification produced by Run. The registry
// is the same one passed in, with its graphs pruned in place.
type Result struct {
	Registry *flow.Registry
	States   map[flow.Key]revert.State
}

// StateOf returns the classification of a registry key.
func (r *Result) StateOf(key flow.Key) revert.State {
	return r.States[key]
}

// Unresolved returns the keys left Unknown at fixpoint exhaustion, in
// registry order. They are exactly the unresolved recursive cycles and are
// pruned as reverting.
func (r *Result) Unresolved() []flow.Key {
	var keys []flow.Key
	for _, key := range r.Registry.Keys() {
		if r.States[key] == revert.Unknown {
			keys = append(keys, key)
		}
	}
	return keys
}

// Run executes both passes over the registry: the fixpoint classification
// followed by the in-place edge rewrite. Strict phase ordering replaces
// locking; the state table is frozen before the first graph is touched.
func Run(logger *zap.Logger, reg *flow.Registry) *Result {
	states := revert.NewAnalyzer(reg).Run()

	if logger != nil {
		unresolved := 0
		for _, state := range states {
			if state == revert.Unknown {
				unresolved++
			}
		}
		logger.Debug("revert states computed",
			zap.Int("callables", len(states)),
			zap.Int("unresolved", unresolved))
	}

	revert.NewPruner(reg, states).Run()
	return &Result{Registry: reg, States: states}
}
