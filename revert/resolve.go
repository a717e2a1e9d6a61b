package revert

import (
	"github.com/gnoverse/revflow/decl"
	"github.com/gnoverse/revflow/flow"
)

// resolveCall binds a call site to the declaration live in the calling
// contract's context.
func resolveCall(site *flow.CallSite, calling decl.Contract) decl.Function {
	switch site.Lookup {
	case decl.Virtual:
		if calling != nil {
			return site.Callee.ResolveVirtual(calling)
		}
		return site.Callee
	case decl.Static:
		return site.Callee
	default:
		panic("revflow: function call with invalid lookup kind")
	}
}

// resolveInvocation binds a modifier invocation to the declaration live in
// the calling contract's context.
func resolveInvocation(inv *flow.Invocation, calling decl.Contract) decl.Modifier {
	switch inv.Lookup {
	case decl.Virtual:
		if calling != nil {
			return inv.Modifier.ResolveVirtual(calling)
		}
		return inv.Modifier
	case decl.Static:
		return inv.Modifier
	default:
		panic("revflow: modifier invocation with invalid lookup kind")
	}
}

// scopeOf finds the registry context for a resolved callable: the calling
// contract when it derives from the declaring contract (keeps the most
// derived override in scope), otherwise the declaring contract itself
// (library calls), otherwise no contract at all (free functions).
func scopeOf(callable decl.Callable, calling decl.Contract) decl.Contract {
	if declared := callable.Contract(); declared != nil {
		if calling != nil && calling.DerivesFrom(declared) {
			return calling
		}
		return declared
	}
	return nil
}

// callTarget resolves a node's call or invocation annotation to a registry
// key in the given contract context. ok is false when the node is not a
// call site, or when the resolved target has no implemented body; abstract
// and interface members are plain pass-through nodes, never blockers.
func callTarget(node *flow.Node, calling decl.Contract) (flow.Key, bool) {
	if node.Call != nil && node.Invocation != nil {
		panic("revflow: node carries both a function call and a modifier invocation")
	}

	var callable decl.Callable
	switch {
	case node.Call != nil:
		callable = resolveCall(node.Call, calling)
	case node.Invocation != nil:
		callable = resolveInvocation(node.Invocation, calling)
	default:
		return flow.Key{}, false
	}

	if callable == nil || !callable.IsImplemented() {
		return flow.Key{}, false
	}
	return flow.Key{Contract: scopeOf(callable, calling), Callable: callable}, true
}
