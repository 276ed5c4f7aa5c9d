package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitewum/tinkerpop/internal/core/checkpoint"
)

func newSaver(t *testing.T) *CheckpointSaver {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "checkpoints.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewCheckpointSaver(db, nil)
	require.NoError(t, err)
	return s
}

func TestCheckpointSaver_SaveLoad(t *testing.T) {
	s := newSaver(t)
	ctx := context.Background()

	cp := &checkpoint.Checkpoint{
		ID:          "cp-1",
		TraversalID: "t-1",
		Superstep:   2,
		Frontier:    [][]byte{[]byte("one"), []byte("two")},
		SideEffects: map[string]interface{}{"count": int64(7)},
		Metadata:    checkpoint.Metadata{Engine: "local", Tags: []string{"test"}},
		Timestamp:   time.Now().UTC(),
		Version:     "1.0",
	}
	require.NoError(t, s.Save(ctx, cp))

	loaded, err := s.Load(ctx, "cp-1")
	require.NoError(t, err)
	assert.Equal(t, cp.TraversalID, loaded.TraversalID)
	assert.Equal(t, cp.Superstep, loaded.Superstep)
	assert.Equal(t, cp.Frontier, loaded.Frontier)
	assert.Equal(t, "local", loaded.Metadata.Engine)
	assert.Equal(t, []string{"test"}, loaded.Metadata.Tags)
	assert.Equal(t, cp.Timestamp.UnixNano(), loaded.Timestamp.UnixNano())
}

func TestCheckpointSaver_Save_Upsert(t *testing.T) {
	s := newSaver(t)
	ctx := context.Background()

	cp := &checkpoint.Checkpoint{
		ID: "cp-1", TraversalID: "t-1", Superstep: 1,
		Frontier: [][]byte{[]byte("a")}, Timestamp: time.Now().UTC(), Version: "1.0",
	}
	require.NoError(t, s.Save(ctx, cp))

	cp.Superstep = 5
	require.NoError(t, s.Save(ctx, cp))

	loaded, err := s.Load(ctx, "cp-1")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Superstep)
}

func TestCheckpointSaver_Load_NotFound(t *testing.T) {
	s := newSaver(t)
	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, checkpoint.ErrCheckpointNotFound)
}

func TestCheckpointSaver_List(t *testing.T) {
	s := newSaver(t)
	ctx := context.Background()
	base := time.Now().UTC()
	for i, id := range []string{"cp-0", "cp-1", "cp-2"} {
		cp := &checkpoint.Checkpoint{
			ID: id, TraversalID: "t-1", Superstep: i,
			Frontier:  [][]byte{[]byte("x")},
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Version:   "1.0",
		}
		require.NoError(t, s.Save(ctx, cp))
	}

	got, err := s.List(ctx, checkpoint.Filter{TraversalID: "t-1"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "cp-2", got[0].ID)

	got, err = s.List(ctx, checkpoint.Filter{TraversalID: "t-1", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cp-1", got[0].ID)

	got, err = s.List(ctx, checkpoint.Filter{TraversalID: "other"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckpointSaver_Delete(t *testing.T) {
	s := newSaver(t)
	ctx := context.Background()
	cp := &checkpoint.Checkpoint{
		ID: "cp-1", TraversalID: "t-1",
		Frontier: [][]byte{[]byte("x")}, Timestamp: time.Now().UTC(), Version: "1.0",
	}
	require.NoError(t, s.Save(ctx, cp))

	require.NoError(t, s.Delete(ctx, "cp-1"))
	assert.ErrorIs(t, s.Delete(ctx, "cp-1"), checkpoint.ErrCheckpointNotFound)
}
