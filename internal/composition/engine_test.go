package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mek/internal/primitives"
)

type scriptedExecutor struct {
	outcomes []*primitives.FailureResult // nil entry means success
	calls    int
}

func (s *scriptedExecutor) Execute(ctx primitives.Context, intent primitives.Intent, grantID string, scope primitives.Scope) (*primitives.Result, *primitives.FailureResult) {
	idx := s.calls
	s.calls++
	if idx >= len(s.outcomes) || s.outcomes[idx] == nil {
		return &primitives.Result{ContextID: ctx.ID(), Capability: intent.Capability()}, nil
	}
	return nil, s.outcomes[idx]
}

func mkStep(order int, cap string) Step {
	ctx, _ := primitives.NewContext("ctx", "alice", 0)
	intent, _ := primitives.NewIntent(cap, 0.9, nil)
	return Step{Order: order, Capability: cap, Context: ctx, Intent: intent, GrantID: "g1"}
}

func TestEngineRunsAllStepsOnSuccess(t *testing.T) {
	exec := &scriptedExecutor{outcomes: []*primitives.FailureResult{nil, nil, nil}}
	eng := New(exec, nil)
	result := eng.Run([]Step{mkStep(0, "a"), mkStep(1, "b"), mkStep(2, "c")})

	require.True(t, result.Succeeded())
	assert.Len(t, result.Outcomes, 3)
	assert.Equal(t, 3, exec.calls)
}

func TestEngineHaltsOnFirstFailure(t *testing.T) {
	fr := &primitives.FailureResult{ContextID: "ctx", Composition: primitives.FailureComposition{}}
	exec := &scriptedExecutor{outcomes: []*primitives.FailureResult{nil, fr, nil}}
	eng := New(exec, nil)
	result := eng.Run([]Step{mkStep(0, "a"), mkStep(1, "b"), mkStep(2, "c")})

	require.True(t, result.Halted)
	assert.Len(t, result.Outcomes, 2)
	assert.Equal(t, 2, exec.calls) // step c never attempted
}

func TestEngineRejectsGapInOrder(t *testing.T) {
	exec := &scriptedExecutor{}
	eng := New(exec, nil)
	result := eng.Run([]Step{mkStep(0, "a"), mkStep(2, "c")})

	require.True(t, result.Halted)
	require.Len(t, result.Outcomes, 1)
	require.NotNil(t, result.Outcomes[0].Failure)
	first, ok := result.Outcomes[0].Failure.Composition.First()
	require.True(t, ok)
	assert.Equal(t, primitives.FailureCompositionOrderViolation, first.Type)
	assert.Zero(t, exec.calls) // no step ever reaches the executor
}

func TestEngineRejectsDuplicateOrder(t *testing.T) {
	exec := &scriptedExecutor{}
	eng := New(exec, nil)
	result := eng.Run([]Step{mkStep(0, "a"), mkStep(0, "b")})

	require.True(t, result.Halted)
	first, ok := result.Outcomes[0].Failure.Composition.First()
	require.True(t, ok)
	assert.Equal(t, primitives.FailureCompositionOrderViolation, first.Type)
	assert.Zero(t, exec.calls)
}
