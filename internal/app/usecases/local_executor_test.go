package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memory "github.com/whitewum/tinkerpop/internal/adapters/repository/memory"
	"github.com/whitewum/tinkerpop/internal/app/dto"
	"github.com/whitewum/tinkerpop/internal/app/services"
	"github.com/whitewum/tinkerpop/internal/core/traversal"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

// funcStep adapts a function to the Step interface.
type funcStep struct {
	label string
	fn    func(t traverser.Admin) ([]traverser.Admin, error)
}

func (s *funcStep) Label() string { return s.label }
func (s *funcStep) Process(_ context.Context, t traverser.Admin) ([]traverser.Admin, error) {
	return s.fn(t)
}

func passthrough(label string) *funcStep {
	return &funcStep{label: label, fn: func(t traverser.Admin) ([]traverser.Admin, error) {
		return []traverser.Admin{t}, nil
	}}
}

func newExecutor() *LocalExecutor {
	return NewLocalExecutor(services.NewCheckpointService(memory.NewCheckpointSaver(), nil, 0), zerolog.Nop())
}

func buildTraversal(t *testing.T, steps ...traversal.Step) *traversal.Traversal {
	t.Helper()
	tr := traversal.New()
	for _, s := range steps {
		require.NoError(t, tr.AddStep(s))
	}
	return tr
}

func TestLocalExecutor_Execute_LoopSplitHalt(t *testing.T) {
	// A traverser at 5 passes a loop boundary twice, then splits a child at
	// 10 under label "a"; the child falls through to the halt future.
	loops := &funcStep{label: "loop", fn: func(tr traverser.Admin) ([]traverser.Admin, error) {
		tr.IncrLoops()
		tr.IncrLoops()
		return []traverser.Admin{tr}, nil
	}}
	split := &funcStep{label: "split", fn: func(tr traverser.Admin) ([]traverser.Admin, error) {
		return []traverser.Admin{tr.Split("a", 10)}, nil
	}}

	result, err := newExecutor().Execute(context.Background(), buildTraversal(t, loops, split), "t-1", []interface{}{5}, dto.ExecutionConfig{})
	require.NoError(t, err)

	require.Equal(t, 1, result.Halted.Len())
	halted := result.Halted.Traversers()[0]
	assert.Equal(t, 10, halted.Get())
	assert.Equal(t, uint16(2), halted.Loops())
	assert.True(t, halted.IsHalted())

	got, err := halted.Path().Get("a")
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestLocalExecutor_Execute_BulkMergesFrontier(t *testing.T) {
	step := passthrough("s")

	result, err := newExecutor().Execute(context.Background(), buildTraversal(t, step), "t-1", []interface{}{7, 7, 7, 8}, dto.ExecutionConfig{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Halted.Len())
	assert.Equal(t, uint64(4), result.Halted.BulkCount())
}

func TestLocalExecutor_Execute_ExplicitRoutingSkipsSteps(t *testing.T) {
	var middleRan bool
	first := &funcStep{label: "first", fn: func(tr traverser.Admin) ([]traverser.Admin, error) {
		tr.SetFuture("last")
		return []traverser.Admin{tr}, nil
	}}
	middle := &funcStep{label: "middle", fn: func(tr traverser.Admin) ([]traverser.Admin, error) {
		middleRan = true
		return []traverser.Admin{tr}, nil
	}}
	last := passthrough("last")

	result, err := newExecutor().Execute(context.Background(), buildTraversal(t, first, middle, last), "t-1", []interface{}{1}, dto.ExecutionConfig{})
	require.NoError(t, err)

	assert.False(t, middleRan)
	assert.Equal(t, 1, result.Halted.Len())
}

func TestLocalExecutor_Execute_StepBudget(t *testing.T) {
	a := &funcStep{label: "a", fn: func(tr traverser.Admin) ([]traverser.Admin, error) {
		tr.SetFuture("b")
		return []traverser.Admin{tr}, nil
	}}
	b := &funcStep{label: "b", fn: func(tr traverser.Admin) ([]traverser.Admin, error) {
		tr.SetFuture("a")
		return []traverser.Admin{tr}, nil
	}}

	_, err := newExecutor().Execute(context.Background(), buildTraversal(t, a, b), "t-1", []interface{}{1}, dto.ExecutionConfig{MaxSteps: 10})
	assert.ErrorIs(t, err, ErrStepBudgetExceeded)
}

func TestLocalExecutor_Execute_StepErrorSurfaces(t *testing.T) {
	boom := errors.New("boom")
	failing := &funcStep{label: "fail", fn: func(traverser.Admin) ([]traverser.Admin, error) {
		return nil, boom
	}}

	_, err := newExecutor().Execute(context.Background(), buildTraversal(t, failing), "t-1", []interface{}{1}, dto.ExecutionConfig{})
	assert.ErrorIs(t, err, boom)
}

func TestLocalExecutor_Execute_NilAndEmptyTraversal(t *testing.T) {
	_, err := newExecutor().Execute(context.Background(), nil, "t-1", nil, dto.ExecutionConfig{})
	assert.ErrorIs(t, err, ErrNilTraversal)

	_, err = newExecutor().Execute(context.Background(), traversal.New(), "t-1", nil, dto.ExecutionConfig{})
	assert.ErrorIs(t, err, traversal.ErrNoSteps)
}

func TestLocalExecutor_Execute_SideEffectsInResult(t *testing.T) {
	counting := &funcStep{label: "count", fn: func(tr traverser.Admin) ([]traverser.Admin, error) {
		tr.SideEffects().Set("seen", tr.Get())
		return []traverser.Admin{tr}, nil
	}}

	result, err := newExecutor().Execute(context.Background(), buildTraversal(t, counting), "t-1", []interface{}{42}, dto.ExecutionConfig{})
	require.NoError(t, err)

	assert.Equal(t, 42, result.SideEffects["seen"])
	assert.Equal(t, traversal.EngineLocal.String(), result.Engine)
}

func TestLocalExecutor_Execute_CheckpointsKeepRunLive(t *testing.T) {
	saver := memory.NewCheckpointSaver()
	exec := NewLocalExecutor(services.NewCheckpointService(saver, nil, 1), zerolog.Nop())

	chain := []traversal.Step{passthrough("a"), passthrough("b"), passthrough("c")}

	result, err := exec.Execute(context.Background(), buildTraversal(t, chain...), "t-1", []interface{}{1, 2}, dto.ExecutionConfig{})
	require.NoError(t, err)

	// The run completes despite periodic checkpointing of the live frontier.
	assert.Equal(t, uint64(2), result.Halted.BulkCount())
}
