// Package decl defines the contracts between the revert-flow stage and the
// declaration graph produced by earlier compiler phases. The analysis never
// inspects syntax; it only asks the questions below.
package decl

// LookupKind selects how a referenced declaration is bound at a call or
// modifier-invocation site.
type LookupKind int

const (
	// Virtual resolves the override live in the calling contract.
	Virtual LookupKind = iota
	// Static binds to the named declaration exactly.
	Static
)

func (k LookupKind) String() string {
	switch k {
	case Virtual:
		return "virtual"
	case Static:
		return "static"
	default:
		return "invalid"
	}
}

// Contract is one contract definition in the declaration graph.
type Contract interface {
	Name() string

	// Linearized returns the linearized base list, most derived first.
	// The receiver is its own first element.
	Linearized() []Contract

	// DerivesFrom reports whether base appears in the receiver's
	// linearized base list. Every contract derives from itself.
	DerivesFrom(base Contract) bool

	// Functions and Modifiers list the members defined directly on the
	// contract, inherited members excluded.
	Functions() []Function
	Modifiers() []Modifier
}

// Callable is a function or modifier definition.
type Callable interface {
	Name() string

	// Contract returns the declaring contract, nil for free functions.
	Contract() Contract

	// IsImplemented reports whether the declaration carries a body.
	// Abstract and interface members are never analysis targets.
	IsImplemented() bool
}

// Function is a function definition, free or contract-bound.
type Function interface {
	Callable

	// ResolveVirtual returns the override of this function live in the
	// given contract context. Free functions resolve to themselves.
	ResolveVirtual(ctx Contract) Function
}

// Modifier is a modifier definition on a contract.
type Modifier interface {
	Callable

	ResolveVirtual(ctx Contract) Modifier
}

// Source exposes the program's top-level declarations for registry
// construction.
type Source interface {
	FreeFunctions() []Function
	Contracts() []Contract
}
