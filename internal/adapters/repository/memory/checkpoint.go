// Package memory provides a thread-safe in-memory checkpoint saver.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/whitewum/tinkerpop/internal/core/checkpoint"
)

// CheckpointSaver implements checkpoint.Saver with in-memory storage.
// PRINCIPLES:
// - KISS: map + RWMutex, no eviction machinery
// - DIP: implements checkpoint.Saver
type CheckpointSaver struct {
	mu          sync.RWMutex
	checkpoints map[string]*checkpoint.Checkpoint
}

// NewCheckpointSaver creates an empty in-memory saver.
func NewCheckpointSaver() *CheckpointSaver {
	return &CheckpointSaver{checkpoints: make(map[string]*checkpoint.Checkpoint)}
}

var _ checkpoint.Saver = (*CheckpointSaver)(nil)

// Save stores a checkpoint, replacing any previous one with the same ID.
func (s *CheckpointSaver) Save(_ context.Context, cp *checkpoint.Checkpoint) error {
	if cp == nil {
		return checkpoint.ErrInvalidCheckpointID
	}
	if err := cp.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *cp
	s.checkpoints[cp.ID] = &clone
	return nil
}

// Load retrieves a checkpoint by ID.
func (s *CheckpointSaver) Load(_ context.Context, id string) (*checkpoint.Checkpoint, error) {
	if id == "" {
		return nil, checkpoint.ErrInvalidCheckpointID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.checkpoints[id]
	if !ok {
		return nil, checkpoint.ErrCheckpointNotFound
	}
	clone := *cp
	return &clone, nil
}

// List returns checkpoints matching the filter, newest first.
func (s *CheckpointSaver) List(_ context.Context, filter checkpoint.Filter) ([]*checkpoint.Checkpoint, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var matched []*checkpoint.Checkpoint
	for _, cp := range s.checkpoints {
		if filter.TraversalID != "" && cp.TraversalID != filter.TraversalID {
			continue
		}
		if filter.Since != nil && cp.Timestamp.Before(*filter.Since) {
			continue
		}
		if filter.Before != nil && !cp.Timestamp.Before(*filter.Before) {
			continue
		}
		clone := *cp
		matched = append(matched, &clone)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Delete removes a checkpoint by ID.
func (s *CheckpointSaver) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checkpoints[id]; !ok {
		return checkpoint.ErrCheckpointNotFound
	}
	delete(s.checkpoints, id)
	return nil
}
