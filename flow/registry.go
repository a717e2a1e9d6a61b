package flow

import "github.com/gnoverse/revflow/decl"

// Key identifies one callable analyzed in the context of one calling
// contract. Contract is nil for free functions. The same body registered
// under two contexts is two keys, because its outgoing calls resolve
// differently.
type Key struct {
	Contract decl.Contract
	Callable decl.Callable
}

func (k Key) String() string {
	if k.Contract == nil {
		return k.Callable.Name()
	}
	return k.Contract.Name() + "." + k.Callable.Name()
}

// Builder produces the flow graph for one callable body. It is implemented
// outside this stage, by the compiler's flow construction pass.
type Builder interface {
	FunctionFlow(arena *Arena, callable decl.Callable) *Graph
}

// Registry maps resolution keys to their flow graphs. The key set is fixed
// once Build returns; the pruner later rewrites edge content in place.
type Registry struct {
	arena *Arena
	flows map[Key]*Graph
	keys  []Key // registration order, for deterministic iteration
}

// Build registers one graph per implemented free function and, per
// contract, per base in the contract's linearization, per implemented
// function and modifier defined on that base. Bodies inherited from a base
// are registered under the derived contract's key because the override
// targets of their outgoing calls depend on which contract is calling.
func Build(arena *Arena, builder Builder, src decl.Source) *Registry {
	r := &Registry{
		arena: arena,
		flows: make(map[Key]*Graph),
	}

	for _, fn := range src.FreeFunctions() {
		if fn.IsImplemented() {
			r.register(Key{Callable: fn}, builder.FunctionFlow(arena, fn))
		}
	}

	for _, contract := range src.Contracts() {
		for _, base := range contract.Linearized() {
			for _, fn := range base.Functions() {
				if fn.IsImplemented() {
					r.register(Key{Contract: contract, Callable: fn}, builder.FunctionFlow(arena, fn))
				}
			}
			for _, mod := range base.Modifiers() {
				if mod.IsImplemented() {
					r.register(Key{Contract: contract, Callable: mod}, builder.FunctionFlow(arena, mod))
				}
			}
		}
	}

	return r
}

func (r *Registry) register(key Key, g *Graph) {
	if _, ok := r.flows[key]; ok {
		panic("revflow: duplicate flow registration for " + key.String())
	}
	r.flows[key] = g
	r.keys = append(r.keys, key)
}

// Arena returns the arena owning every node of every registered graph.
func (r *Registry) Arena() *Arena {
	return r.arena
}

// Keys returns every registered key in registration order. The returned
// slice is shared; callers must not modify it.
func (r *Registry) Keys() []Key {
	return r.keys
}

// Flow returns the graph registered for the key. Looking up an
// unregistered key is a bug in the caller, not an input error.
func (r *Registry) Flow(key Key) *Graph {
	g, ok := r.flows[key]
	if !ok {
		panic("revflow: no flow registered for " + key.String())
	}
	return g
}

// FlowOf returns the graph for a callable in the given contract context.
func (r *Registry) FlowOf(callable decl.Callable, contract decl.Contract) *Graph {
	return r.Flow(Key{Contract: contract, Callable: callable})
}

// Has reports whether the key was registered.
func (r *Registry) Has(key Key) bool {
	_, ok := r.flows[key]
	return ok
}
