// Package revert classifies every registered callable by its revert
// behaviour and rewrites the flow graphs so that call sites which provably
// always revert lead straight to the revert sentinel. Later passes can then
// read "no path continues past this call" off the graph structure instead
// of re-deriving it.
package revert

// State is the revert classification of one registry key. It is set at
// most once away from Unknown per analysis run and never regresses.
type State int

const (
	// Unknown is the initial state. It survives the fixpoint only for
	// unresolved recursive cycles, which the pruner treats as reverting.
	Unknown State = iota

	// AllPathsRevert means every execution path reaches the revert
	// sentinel.
	AllPathsRevert

	// HasNonRevertingPath means some path reaches the exit sentinel
	// without passing a placeholder.
	HasNonRevertingPath

	// ModifierRevertPassthrough means the exit sentinel is reachable, but
	// only through a placeholder; whether the callable reverts depends on
	// what runs in the placeholder's place.
	ModifierRevertPassthrough
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case AllPathsRevert:
		return "AllPathsRevert"
	case HasNonRevertingPath:
		return "HasNonRevertingPath"
	case ModifierRevertPassthrough:
		return "ModifierRevertPassthrough"
	default:
		return "invalid"
	}
}
