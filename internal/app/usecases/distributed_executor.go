package usecases

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/whitewum/tinkerpop/internal/app/dto"
	"github.com/whitewum/tinkerpop/internal/app/services"
	"github.com/whitewum/tinkerpop/internal/core/pregel"
	"github.com/whitewum/tinkerpop/internal/core/structure"
	"github.com/whitewum/tinkerpop/internal/core/traversal"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

// DistributedExecutor runs a traversal on the vertex-centric engine. The
// traversal must already be rewritten for EngineDistributed; the executor
// only wires graph, checkpointing and configuration together.
type DistributedExecutor struct {
	graph       structure.Graph
	checkpoints *services.CheckpointService
	logger      zerolog.Logger
}

// NewDistributedExecutor creates a distributed executor over a graph. The
// checkpoint service may be nil to disable checkpointing.
func NewDistributedExecutor(graph structure.Graph, checkpoints *services.CheckpointService, logger zerolog.Logger) *DistributedExecutor {
	return &DistributedExecutor{graph: graph, checkpoints: checkpoints, logger: logger}
}

// Execute drives the traversal to completion over supersteps and returns
// the bulk-merged halted traversers in detached form.
func (e *DistributedExecutor) Execute(ctx context.Context, t *traversal.Traversal, traversalID string, starts []interface{}, cfg dto.ExecutionConfig) (*dto.ExecutionResult, error) {
	if t == nil {
		return nil, ErrNilTraversal
	}
	engine, err := pregel.NewEngine(e.graph, t, nil, pregel.Config{
		MaxSupersteps: cfg.MaxSupersteps,
		Parallelism:   cfg.Parallelism,
		QueueCapacity: 0,
		Timeout:       cfg.Timeout,
	}, e.logger)
	if err != nil {
		return nil, err
	}
	if e.checkpoints != nil && cfg.CheckpointEvery > 0 {
		engine.SetCheckpoint(func(ctx context.Context, step int, frontier []traverser.Admin) error {
			_, err := e.checkpoints.Save(ctx, traversalID, traversal.EngineDistributed.String(), step, frontier, nil)
			return err
		}, cfg.CheckpointEvery)
	}

	e.logger.Debug().
		Str("traversal", traversalID).
		Int("starts", len(starts)).
		Msg("distributed execution started")

	began := time.Now()
	halted, supersteps, err := engine.Run(ctx, starts)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("traversal", traversalID).
		Int("supersteps", supersteps).
		Uint64("halted_bulk", halted.BulkCount()).
		Msg("distributed execution finished")

	return &dto.ExecutionResult{
		TraversalID: traversalID,
		Engine:      traversal.EngineDistributed.String(),
		Halted:      halted,
		Steps:       supersteps,
		Duration:    time.Since(began),
	}, nil
}
