package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/revflow/flow"
	"github.com/gnoverse/revflow/internal/program"
)

const registryProgram = `
free:
  - name: h
    body: [return]
contracts:
  - name: Base
    functions:
      - name: f
        body: [revert]
      - name: g
        body: ["call f"]
    modifiers:
      - name: guarded
        body: [require, placeholder]
  - name: Derived
    bases: [Base]
    functions:
      - name: f
        body: [return]
`

func buildRegistry(t *testing.T, src string) (*program.Program, *flow.Registry) {
	t.Helper()
	prog, err := program.Load([]byte(src))
	require.NoError(t, err)
	return prog, flow.Build(flow.NewArena(), program.NewBuilder(), prog)
}

func TestBuildRegistersLinearizedBases(t *testing.T) {
	prog, reg := buildRegistry(t, registryProgram)

	base := prog.Contract("Base")
	derived := prog.Contract("Derived")

	// free function, 3 Base members, Derived's own f plus the 3 inherited
	// Base members re-registered under Derived.
	assert.Len(t, reg.Keys(), 8)

	assert.True(t, reg.Has(flow.Key{Callable: prog.FreeFunction("h")}))
	assert.True(t, reg.Has(flow.Key{Contract: base, Callable: base.Function("f")}))
	assert.True(t, reg.Has(flow.Key{Contract: base, Callable: base.Modifier("guarded")}))
	assert.True(t, reg.Has(flow.Key{Contract: derived, Callable: derived.Function("f")}))

	// the inherited body gets its own graph under the derived context
	assert.True(t, reg.Has(flow.Key{Contract: derived, Callable: base.Function("f")}))
	assert.True(t, reg.Has(flow.Key{Contract: derived, Callable: base.Modifier("guarded")}))

	inherited := reg.FlowOf(base.Function("f"), derived)
	own := reg.FlowOf(base.Function("f"), base)
	assert.NotSame(t, inherited, own, "each context gets a separate graph")
}

func TestRegistryLookupPanicsOnUnknownKey(t *testing.T) {
	prog, reg := buildRegistry(t, registryProgram)

	base := prog.Contract("Base")
	assert.Panics(t, func() {
		// Base.f exists, but not in a free-function context.
		reg.FlowOf(base.Function("f"), nil)
	})
}

func TestRegistryKeyString(t *testing.T) {
	prog, _ := buildRegistry(t, registryProgram)

	base := prog.Contract("Base")
	assert.Equal(t, "Base.f", flow.Key{Contract: base, Callable: base.Function("f")}.String())
	assert.Equal(t, "h", flow.Key{Callable: prog.FreeFunction("h")}.String())
}
