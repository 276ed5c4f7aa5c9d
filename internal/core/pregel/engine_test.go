package pregel

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphrepo "github.com/whitewum/tinkerpop/internal/adapters/repository/graph"
	"github.com/whitewum/tinkerpop/internal/core/structure"
	"github.com/whitewum/tinkerpop/internal/core/traversal"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

// outStep moves each traverser to the adjacent out-vertices of its current
// vertex.
type outStep struct {
	label string
}

func (s *outStep) Label() string { return s.label }

func (s *outStep) Process(_ context.Context, t traverser.Admin) ([]traverser.Admin, error) {
	v, ok := t.Get().(structure.Vertex)
	if !ok {
		return nil, fmt.Errorf("step %q requires a vertex, got %T", s.label, t.Get())
	}
	edges, err := v.Edges(structure.DirectionOut)
	if err != nil {
		return nil, err
	}
	outs := make([]traverser.Admin, 0, len(edges))
	for _, e := range edges {
		outs = append(outs, t.Split(s.label, e.InVertex()))
	}
	return outs, nil
}

// bounceStep routes its output explicitly to another step, never halting.
type bounceStep struct {
	label string
	to    string
}

func (s *bounceStep) Label() string { return s.label }

func (s *bounceStep) Process(_ context.Context, t traverser.Admin) ([]traverser.Admin, error) {
	t.SetFuture(s.to)
	return []traverser.Admin{t}, nil
}

func chainGraph(t *testing.T) (*graphrepo.InMemoryGraph, structure.Vertex) {
	t.Helper()
	g := graphrepo.NewInMemoryGraph("g")
	v1, err := g.AddVertex("v1", "person", nil)
	require.NoError(t, err)
	_, err = g.AddVertex("v2", "person", nil)
	require.NoError(t, err)
	_, err = g.AddVertex("v3", "person", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("e1", "knows", "v1", "v2")
	require.NoError(t, err)
	_, err = g.AddEdge("e2", "knows", "v2", "v3")
	require.NoError(t, err)
	return g, v1
}

func pipeline(t *testing.T, steps ...traversal.Step) *traversal.Traversal {
	t.Helper()
	tr := traversal.New()
	for _, s := range steps {
		require.NoError(t, tr.AddStep(s))
	}
	return tr
}

func TestEngine_Run_Chain(t *testing.T) {
	g, v1 := chainGraph(t)
	tr := pipeline(t, &outStep{label: "out1"}, &outStep{label: "out2"})

	engine, err := NewEngine(g, tr, nil, Config{}, zerolog.Nop())
	require.NoError(t, err)

	halted, supersteps, err := engine.Run(context.Background(), []interface{}{v1})
	require.NoError(t, err)

	// v1 -> v2 -> v3 takes two hops: one superstep at v1, one at v2.
	assert.Equal(t, 2, supersteps)
	require.Equal(t, 1, halted.Len())

	result := halted.Traversers()[0]
	dv, ok := result.Get().(*structure.DetachedVertex)
	require.True(t, ok)
	assert.Equal(t, "v3", dv.VertexID)
	assert.Equal(t, uint64(1), result.Bulk())

	// The path records both hops.
	assert.Equal(t, []string{"out1", "out2"}, result.Path().Labels())
}

func TestEngine_Run_BulkMergesConvergingTraversers(t *testing.T) {
	g := graphrepo.NewInMemoryGraph("g")
	v1, err := g.AddVertex("v1", "person", nil)
	require.NoError(t, err)
	v2, err := g.AddVertex("v2", "person", nil)
	require.NoError(t, err)
	_, err = g.AddVertex("v3", "person", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("e1", "knows", "v1", "v3")
	require.NoError(t, err)
	_, err = g.AddEdge("e2", "knows", "v2", "v3")
	require.NoError(t, err)

	// Two seeds converge on v3 in one hop with identical state, so the
	// merge invariant folds them into a single bulked traverser.
	tr := pipeline(t, &outStep{label: "out"})
	engine, err := NewEngine(g, tr, nil, Config{}, zerolog.Nop())
	require.NoError(t, err)

	halted, _, err := engine.Run(context.Background(), []interface{}{v1, v2})
	require.NoError(t, err)

	// Both traversers end at v3 with path [("out", v3)]; they fold into one
	// instance of bulk two.
	require.Equal(t, 1, halted.Len())
	assert.Equal(t, uint64(2), halted.BulkCount())
}

func TestEngine_Run_NonVertexStart(t *testing.T) {
	g, _ := chainGraph(t)
	tr := pipeline(t, &outStep{label: "out"})
	engine, err := NewEngine(g, tr, nil, Config{}, zerolog.Nop())
	require.NoError(t, err)

	_, _, err = engine.Run(context.Background(), []interface{}{42})
	assert.ErrorIs(t, err, ErrNonVertexStart)
}

func TestEngine_Run_SuperstepBudget(t *testing.T) {
	g, v1 := chainGraph(t)
	tr := pipeline(t,
		&bounceStep{label: "a", to: "b"},
		&bounceStep{label: "b", to: "a"},
	)
	engine, err := NewEngine(g, tr, nil, Config{MaxSupersteps: 3}, zerolog.Nop())
	require.NoError(t, err)

	_, supersteps, err := engine.Run(context.Background(), []interface{}{v1})
	assert.ErrorIs(t, err, ErrSuperstepExceeded)
	assert.Equal(t, 3, supersteps)
}

func TestEngine_Run_EmptyTraversal(t *testing.T) {
	g, v1 := chainGraph(t)
	engine, err := NewEngine(g, traversal.New(), nil, Config{}, zerolog.Nop())
	require.NoError(t, err)

	_, _, err = engine.Run(context.Background(), []interface{}{v1})
	assert.ErrorIs(t, err, traversal.ErrNoSteps)
}

func TestEngine_Run_ContextCancelled(t *testing.T) {
	g, v1 := chainGraph(t)
	tr := pipeline(t, &outStep{label: "out"})
	engine, err := NewEngine(g, tr, nil, Config{}, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = engine.Run(ctx, []interface{}{v1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Run_Checkpoints(t *testing.T) {
	g, v1 := chainGraph(t)
	tr := pipeline(t, &outStep{label: "out1"}, &outStep{label: "out2"})
	engine, err := NewEngine(g, tr, nil, Config{}, zerolog.Nop())
	require.NoError(t, err)

	var snapshots [][]traverser.Admin
	engine.SetCheckpoint(func(_ context.Context, step int, frontier []traverser.Admin) error {
		snapshots = append(snapshots, frontier)
		return nil
	}, 1)

	_, _, err = engine.Run(context.Background(), []interface{}{v1})
	require.NoError(t, err)

	// One snapshot per completed superstep that still had queued messages.
	require.NotEmpty(t, snapshots)
	for _, frontier := range snapshots {
		for _, tr := range frontier {
			_, ok := tr.Get().(*structure.DetachedVertex)
			assert.True(t, ok)
		}
	}
}

func TestNewEngine_Validation(t *testing.T) {
	g, _ := chainGraph(t)

	_, err := NewEngine(nil, traversal.New(), nil, Config{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNilGraph)

	_, err = NewEngine(g, nil, nil, Config{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNilTraversal)
}
