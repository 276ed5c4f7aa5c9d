package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitewum/tinkerpop/internal/adapters/repository/memory"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

func TestCheckpointService_ShouldSave(t *testing.T) {
	tests := []struct {
		name string
		svc  *CheckpointService
		step int
		want bool
	}{
		{name: "due step", svc: NewCheckpointService(memory.NewCheckpointSaver(), nil, 5), step: 10, want: true},
		{name: "off-cycle step", svc: NewCheckpointService(memory.NewCheckpointSaver(), nil, 5), step: 7, want: false},
		{name: "step zero", svc: NewCheckpointService(memory.NewCheckpointSaver(), nil, 5), step: 0, want: false},
		{name: "disabled", svc: NewCheckpointService(memory.NewCheckpointSaver(), nil, 0), step: 10, want: false},
		{name: "nil saver", svc: NewCheckpointService(nil, nil, 5), step: 10, want: false},
		{name: "nil service", svc: nil, step: 10, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.svc.ShouldSave(tt.step))
		})
	}
}

func TestCheckpointService_SaveLoad_RoundTrip(t *testing.T) {
	saver := memory.NewCheckpointSaver()
	svc := NewCheckpointService(saver, nil, 1)
	ctx := context.Background()

	first := traverser.New(5, "step-1", nil)
	first.IncrLoops()
	second := traverser.New("other", "step-2", nil)
	second.SetSack("sack")

	cp, err := svc.Save(ctx, "t-1", "local", 3, []traverser.Admin{first, second}, map[string]interface{}{"k": "v"})
	require.NoError(t, err)
	assert.NotEmpty(t, cp.ID)
	assert.Equal(t, 3, cp.Superstep)
	assert.Equal(t, "local", cp.Metadata.Engine)
	assert.Len(t, cp.Frontier, 2)

	loaded, frontier, err := svc.Load(ctx, cp.ID)
	require.NoError(t, err)
	assert.Equal(t, "t-1", loaded.TraversalID)
	require.Len(t, frontier, 2)

	assert.Equal(t, uint16(1), frontier[0].Loops())
	assert.Equal(t, "step-1", frontier[0].Future())
	assert.Equal(t, "other", frontier[1].Get())
	assert.Equal(t, "sack", frontier[1].Sack())
}

func TestCheckpointService_Save_DetachesFrontier(t *testing.T) {
	svc := NewCheckpointService(memory.NewCheckpointSaver(), nil, 1)

	tr := traverser.New(5, "s", nil)
	_, err := svc.Save(context.Background(), "t-1", "local", 1, []traverser.Admin{tr}, nil)
	require.NoError(t, err)

	assert.True(t, tr.Detached())
}
