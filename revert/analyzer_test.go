package revert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/revflow/flow"
	"github.com/gnoverse/revflow/internal/program"
	"github.com/gnoverse/revflow/revert"
)

func load(t *testing.T, src string) (*program.Program, *flow.Registry) {
	t.Helper()
	prog, err := program.Load([]byte(src))
	require.NoError(t, err)
	return prog, flow.Build(flow.NewArena(), program.NewBuilder(), prog)
}

func analyze(reg *flow.Registry) map[flow.Key]revert.State {
	return revert.NewAnalyzer(reg).Run()
}

func freeKey(prog *program.Program, name string) flow.Key {
	return flow.Key{Callable: prog.FreeFunction(name)}
}

func TestFreeFunctionClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want revert.State
	}{
		{"AllPathsRevert", "[revert]", revert.AllPathsRevert},
		{"NonRevertingReturn", "[return]", revert.HasNonRevertingPath},
		{"NonRevertingFallthrough", "[noop]", revert.HasNonRevertingPath},
		{"EmptyBodyFallsThrough", "[]", revert.HasNonRevertingPath},
		{"RequireKeepsExitReachable", "[require]", revert.HasNonRevertingPath},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prog, reg := load(t, "free:\n  - name: f\n    body: "+tt.body+"\n")
			states := analyze(reg)
			assert.Equal(t, tt.want, states[freeKey(prog, "f")])
		})
	}
}

func TestCallIntoRevertingFunction(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
free:
  - name: fail
    body: [revert]
  - name: caller
    body: ["call fail", return]
`)
	states := analyze(reg)

	assert.Equal(t, revert.AllPathsRevert, states[freeKey(prog, "fail")])
	// the return is only reachable past the call, so the caller reverts too
	assert.Equal(t, revert.AllPathsRevert, states[freeKey(prog, "caller")])
}

func TestWakeOrderIndependence(t *testing.T) {
	t.Parallel()
	// caller is registered before its callee, so its first traversal blocks
	// and must be woken up once the callee resolves.
	prog, reg := load(t, `
free:
  - name: caller
    body: ["call fail", return]
  - name: mid
    body: ["call caller", return]
  - name: fail
    body: [revert]
`)
	states := analyze(reg)

	assert.Equal(t, revert.AllPathsRevert, states[freeKey(prog, "caller")])
	assert.Equal(t, revert.AllPathsRevert, states[freeKey(prog, "mid")])
}

func TestModifierRevertPassthrough(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
contracts:
  - name: C
    modifiers:
      - name: guarded
        body: [require, placeholder, cleanup]
`)
	states := analyze(reg)

	c := prog.Contract("C")
	key := flow.Key{Contract: c, Callable: c.Modifier("guarded")}
	assert.Equal(t, revert.ModifierRevertPassthrough, states[key])
}

func TestModifierStateFlowsIntoFunctions(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
contracts:
  - name: C
    modifiers:
      - name: always
        body: [revert]
      - name: guarded
        body: [require, placeholder]
    functions:
      - name: f
        body: ["invoke always", return]
      - name: g
        body: ["invoke guarded", return]
`)
	states := analyze(reg)

	c := prog.Contract("C")
	assert.Equal(t, revert.AllPathsRevert,
		states[flow.Key{Contract: c, Callable: c.Function("f")}],
		"a modifier that always reverts makes the function revert")
	assert.Equal(t, revert.HasNonRevertingPath,
		states[flow.Key{Contract: c, Callable: c.Function("g")}],
		"a passthrough modifier lets the function continue")
}

func TestMutualRecursionStaysUnknown(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
free:
  - name: p
    body: ["call q"]
  - name: q
    body: ["call p"]
`)
	states := analyze(reg)

	assert.Equal(t, revert.Unknown, states[freeKey(prog, "p")])
	assert.Equal(t, revert.Unknown, states[freeKey(prog, "q")])
}

func TestSelfRecursionStaysUnknown(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
free:
  - name: f
    body: ["call f"]
`)
	states := analyze(reg)
	assert.Equal(t, revert.Unknown, states[freeKey(prog, "f")])
}

func TestRecursionWithEscapeResolves(t *testing.T) {
	t.Parallel()
	// q escapes through require's fallthrough edge, so the cycle resolves.
	prog, reg := load(t, `
free:
  - name: p
    body: ["call q"]
  - name: q
    body: [require, return]
`)
	states := analyze(reg)

	assert.Equal(t, revert.HasNonRevertingPath, states[freeKey(prog, "q")])
	assert.Equal(t, revert.HasNonRevertingPath, states[freeKey(prog, "p")])
}

func TestVirtualDispatchUsesCallingContext(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
contracts:
  - name: Base
    functions:
      - name: v
        body: [revert]
      - name: f
        body: ["call v"]
  - name: Derived
    bases: [Base]
    functions:
      - name: v
        body: [return]
`)
	states := analyze(reg)

	base := prog.Contract("Base")
	derived := prog.Contract("Derived")
	f := base.Function("f")

	assert.Equal(t, revert.AllPathsRevert,
		states[flow.Key{Contract: base, Callable: f}],
		"in Base, v reverts on every path")
	assert.Equal(t, revert.HasNonRevertingPath,
		states[flow.Key{Contract: derived, Callable: f}],
		"in Derived, the same body dispatches to the overriding v")
}

func TestStaticLookupBypassesOverride(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
contracts:
  - name: Base
    functions:
      - name: v
        body: [revert]
      - name: f
        body: ["call v static"]
  - name: Derived
    bases: [Base]
    functions:
      - name: v
        body: [return]
`)
	states := analyze(reg)

	derived := prog.Contract("Derived")
	f := prog.Contract("Base").Function("f")
	assert.Equal(t, revert.AllPathsRevert,
		states[flow.Key{Contract: derived, Callable: f}],
		"static lookup binds to Base.v even under Derived")
}

func TestLibraryCallScopesToDeclaringContract(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
contracts:
  - name: Errors
    functions:
      - name: fail
        body: [revert]
  - name: C
    functions:
      - name: f
        body: ["call Errors.fail", return]
`)
	states := analyze(reg)

	errors := prog.Contract("Errors")
	c := prog.Contract("C")
	assert.Equal(t, revert.AllPathsRevert,
		states[flow.Key{Contract: errors, Callable: errors.Function("fail")}])
	assert.Equal(t, revert.AllPathsRevert,
		states[flow.Key{Contract: c, Callable: c.Function("f")}])
}

func TestAbstractCalleeIsPassThrough(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
contracts:
  - name: C
    functions:
      - name: hook
        abstract: true
      - name: f
        body: ["call hook"]
`)
	states := analyze(reg)

	c := prog.Contract("C")
	assert.Equal(t, revert.HasNonRevertingPath,
		states[flow.Key{Contract: c, Callable: c.Function("f")}],
		"a bodyless callee never blocks or kills the path")
}

func TestDeterministicStates(t *testing.T) {
	t.Parallel()
	src := `
free:
  - name: a
    body: ["call b"]
  - name: b
    body: ["call c", return]
  - name: c
    body: [revert]
  - name: d
    body: ["call a"]
`
	first := make(map[string]string)
	_, reg := load(t, src)
	for key, state := range analyze(reg) {
		first[key.String()] = state.String()
	}

	for i := 0; i < 5; i++ {
		_, reg := load(t, src)
		got := make(map[string]string)
		for key, state := range analyze(reg) {
			got[key.String()] = state.String()
		}
		assert.Equal(t, first, got)
	}
}

func TestPlaceholderExitInvariant(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
free:
  - name: f
    body: [return]
`)
	// corrupt the graph: mark the exit node as a placeholder
	reg.Flow(freeKey(prog, "f")).Exit.Placeholder = true

	assert.Panics(t, func() { analyze(reg) })
}

func TestDoubleAnnotationInvariant(t *testing.T) {
	t.Parallel()
	prog, reg := load(t, `
contracts:
  - name: C
    modifiers:
      - name: m
        body: [placeholder]
    functions:
      - name: f
        body: ["call g", return]
      - name: g
        body: [return]
`)
	c := prog.Contract("C")
	g := reg.Flow(flow.Key{Contract: c, Callable: c.Function("f")})

	// corrupt the call node with a second annotation
	callNode := g.Entry.Succs[0]
	require.NotNil(t, callNode.Call)
	callNode.Invocation = &flow.Invocation{Modifier: c.Modifier("m")}

	assert.Panics(t, func() { analyze(reg) })
}
