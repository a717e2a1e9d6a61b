package revflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	revflow "github.com/gnoverse/revflow"
	"github.com/gnoverse/revflow/flow"
	"github.com/gnoverse/revflow/internal/program"
	"github.com/gnoverse/revflow/revert"
)

const sampleProgram = `
free:
  - name: fail
    body: [revert]
contracts:
  - name: Token
    modifiers:
      - name: onlyOwner
        body: [require, placeholder]
    functions:
      - name: burn
        body: ["invoke onlyOwner", "call fail"]
      - name: transfer
        body: ["invoke onlyOwner", return]
  - name: Loop
    functions:
      - name: spin
        body: ["call spin"]
`

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()
	prog, err := program.Load([]byte(sampleProgram))
	require.NoError(t, err)

	reg := flow.Build(flow.NewArena(), program.NewBuilder(), prog)
	result := revflow.Run(zap.NewNop(), reg)

	token := prog.Contract("Token")
	loop := prog.Contract("Loop")

	assert.Equal(t, revert.AllPathsRevert,
		result.StateOf(flow.Key{Callable: prog.FreeFunction("fail")}))
	assert.Equal(t, revert.ModifierRevertPassthrough,
		result.StateOf(flow.Key{Contract: token, Callable: token.Modifier("onlyOwner")}))
	assert.Equal(t, revert.AllPathsRevert,
		result.StateOf(flow.Key{Contract: token, Callable: token.Function("burn")}))
	assert.Equal(t, revert.HasNonRevertingPath,
		result.StateOf(flow.Key{Contract: token, Callable: token.Function("transfer")}))

	spin := flow.Key{Contract: loop, Callable: loop.Function("spin")}
	assert.Equal(t, revert.Unknown, result.StateOf(spin))
	assert.Equal(t, []flow.Key{spin}, result.Unresolved())

	// pruning happened in place: burn's call into fail now leads to revert
	burn := result.Registry.FlowOf(token.Function("burn"), token)
	var pruned bool
	flow.BFS(burn.Entry, func(n *flow.Node, push func(*flow.Node)) bool {
		if n.Call != nil {
			pruned = len(n.Succs) == 1 && n.Succs[0] == burn.Revert
		}
		for _, succ := range n.Succs {
			push(succ)
		}
		return true
	})
	assert.True(t, pruned)
}

func TestRunWithoutLogger(t *testing.T) {
	t.Parallel()
	prog, err := program.Load([]byte("free:\n  - name: f\n    body: [return]\n"))
	require.NoError(t, err)

	reg := flow.Build(flow.NewArena(), program.NewBuilder(), prog)
	result := revflow.Run(nil, reg)
	assert.Empty(t, result.Unresolved())
}
