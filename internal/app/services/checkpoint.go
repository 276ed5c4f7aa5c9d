// Package services provides application services layered over the core.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/whitewum/tinkerpop/internal/core/checkpoint"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
	"github.com/whitewum/tinkerpop/pkg/serialization"
)

// checkpointVersion tags the frontier wire format.
const checkpointVersion = "1.0"

// CheckpointService snapshots a traversal's in-flight traversers through a
// checkpoint.Saver. Traversers are detached and serialized before leaving
// the execution context; loading reverses this into detached traversers
// ready for re-attachment.
type CheckpointService struct {
	saver      checkpoint.Saver
	serializer *serialization.Serializer
	every      int
}

// NewCheckpointService creates a service saving every `every` steps; zero
// disables periodic saves. A nil serializer defaults to the migration
// serializer.
func NewCheckpointService(saver checkpoint.Saver, serializer *serialization.Serializer, every int) *CheckpointService {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &CheckpointService{saver: saver, serializer: serializer, every: every}
}

// ShouldSave reports whether a checkpoint is due after the given step.
func (s *CheckpointService) ShouldSave(step int) bool {
	return s != nil && s.saver != nil && s.every > 0 && step > 0 && step%s.every == 0
}

// Save snapshots the frontier. Every traverser is detached as a side
// effect: checkpointing is a context-boundary crossing.
func (s *CheckpointService) Save(ctx context.Context, traversalID, engine string, step int, frontier []traverser.Admin, sideEffects map[string]interface{}) (*checkpoint.Checkpoint, error) {
	serialized := make([][]byte, 0, len(frontier))
	for _, t := range frontier {
		wire, err := traverser.ToWire(t.Detach())
		if err != nil {
			return nil, fmt.Errorf("failed to detach traverser: %w", err)
		}
		data, err := s.serializer.Serialize(wire)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize traverser: %w", err)
		}
		serialized = append(serialized, data)
	}
	cp := &checkpoint.Checkpoint{
		ID:          uuid.NewString(),
		TraversalID: traversalID,
		Superstep:   step,
		Frontier:    serialized,
		SideEffects: sideEffects,
		Metadata:    checkpoint.Metadata{Engine: engine},
		Timestamp:   time.Now().UTC(),
		Version:     checkpointVersion,
	}
	if err := s.saver.Save(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Load restores the frontier of a checkpoint as detached traversers.
func (s *CheckpointService) Load(ctx context.Context, id string) (*checkpoint.Checkpoint, []traverser.Admin, error) {
	cp, err := s.saver.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	frontier := make([]traverser.Admin, 0, len(cp.Frontier))
	for _, data := range cp.Frontier {
		var wire traverser.Wire
		if err := s.serializer.Deserialize(data, &wire); err != nil {
			return nil, nil, fmt.Errorf("failed to deserialize traverser: %w", err)
		}
		frontier = append(frontier, traverser.FromWire(&wire))
	}
	return cp, frontier, nil
}
