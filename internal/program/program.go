// Package program provides a fixture implementation of the declaration
// graph and flow builder consumed by the revert analysis. Programs are
// described in YAML with bodies written in a small statement script; the
// CLI and the test suite both build registries from it.
package program

import (
	"github.com/gnoverse/revflow/decl"
)

// Contract implements decl.Contract for fixture programs.
type Contract struct {
	name      string
	bases     []*Contract
	functions []*Function
	modifiers []*Modifier

	linearized []decl.Contract
}

func (c *Contract) Name() string { return c.name }

// Linearized returns the contract followed by its bases' linearizations,
// depth first with duplicates dropped. This is a simplification of C3 but
// resolves overrides the same way for the hierarchies fixtures use.
func (c *Contract) Linearized() []decl.Contract {
	if c.linearized == nil {
		seen := make(map[*Contract]bool)
		var walk func(*Contract)
		walk = func(contract *Contract) {
			if seen[contract] {
				return
			}
			seen[contract] = true
			c.linearized = append(c.linearized, contract)
			for _, base := range contract.bases {
				walk(base)
			}
		}
		walk(c)
	}
	return c.linearized
}

func (c *Contract) DerivesFrom(base decl.Contract) bool {
	for _, candidate := range c.Linearized() {
		if candidate == base {
			return true
		}
	}
	return false
}

func (c *Contract) Functions() []decl.Function {
	out := make([]decl.Function, len(c.functions))
	for i, fn := range c.functions {
		out[i] = fn
	}
	return out
}

func (c *Contract) Modifiers() []decl.Modifier {
	out := make([]decl.Modifier, len(c.modifiers))
	for i, mod := range c.modifiers {
		out[i] = mod
	}
	return out
}

// Function finds a function defined directly on the contract.
func (c *Contract) Function(name string) *Function {
	for _, fn := range c.functions {
		if fn.name == name {
			return fn
		}
	}
	return nil
}

// Modifier finds a modifier defined directly on the contract.
func (c *Contract) Modifier(name string) *Modifier {
	for _, mod := range c.modifiers {
		if mod.name == name {
			return mod
		}
	}
	return nil
}

// Function implements decl.Function. Abstract declarations carry no body;
// an implemented empty body falls through to exit.
type Function struct {
	name     string
	contract *Contract
	body     []Statement
	abstract bool
}

func (f *Function) Name() string { return f.name }

func (f *Function) Contract() decl.Contract {
	if f.contract == nil {
		return nil
	}
	return f.contract
}

func (f *Function) IsImplemented() bool { return !f.abstract }

// ResolveVirtual returns the first function of the same name along the
// context's linearization, the declaration itself when nothing overrides
// it. Free functions never take part in dispatch.
func (f *Function) ResolveVirtual(ctx decl.Contract) decl.Function {
	if f.contract == nil || ctx == nil {
		return f
	}
	for _, base := range ctx.Linearized() {
		for _, fn := range base.Functions() {
			if fn.Name() == f.name {
				return fn
			}
		}
	}
	return f
}

// Modifier implements decl.Modifier.
type Modifier struct {
	name     string
	contract *Contract
	body     []Statement
	abstract bool
}

func (m *Modifier) Name() string { return m.name }

func (m *Modifier) Contract() decl.Contract {
	if m.contract == nil {
		return nil
	}
	return m.contract
}

func (m *Modifier) IsImplemented() bool { return !m.abstract }

func (m *Modifier) ResolveVirtual(ctx decl.Contract) decl.Modifier {
	if m.contract == nil || ctx == nil {
		return m
	}
	for _, base := range ctx.Linearized() {
		for _, mod := range base.Modifiers() {
			if mod.Name() == m.name {
				return mod
			}
		}
	}
	return m
}

// Program is a whole fixture program: free functions plus contracts.
type Program struct {
	free      []*Function
	contracts []*Contract
}

func (p *Program) FreeFunctions() []decl.Function {
	out := make([]decl.Function, len(p.free))
	for i, fn := range p.free {
		out[i] = fn
	}
	return out
}

func (p *Program) Contracts() []decl.Contract {
	out := make([]decl.Contract, len(p.contracts))
	for i, contract := range p.contracts {
		out[i] = contract
	}
	return out
}

// Contract finds a contract by name, nil when absent.
func (p *Program) Contract(name string) *Contract {
	for _, contract := range p.contracts {
		if contract.name == name {
			return contract
		}
	}
	return nil
}

// FreeFunction finds a free function by name, nil when absent.
func (p *Program) FreeFunction(name string) *Function {
	for _, fn := range p.free {
		if fn.name == name {
			return fn
		}
	}
	return nil
}
