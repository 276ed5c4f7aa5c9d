// Package usecases provides the executors that drive traversers through a
// traversal pipeline.
package usecases

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/whitewum/tinkerpop/internal/app/dto"
	"github.com/whitewum/tinkerpop/internal/app/services"
	"github.com/whitewum/tinkerpop/internal/core/traversal"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
	"github.com/whitewum/tinkerpop/internal/infrastructure/metrics"
)

// defaultMaxSteps bounds runaway pipelines when no limit is configured.
const defaultMaxSteps = 10000

// LocalExecutor drives a traversal sequentially in a single goroutine:
// one traverser is mutated by at most one step invocation at a time, so no
// locking is needed on the traversers themselves.
type LocalExecutor struct {
	checkpoints *services.CheckpointService
	logger      zerolog.Logger
}

// NewLocalExecutor creates a local executor. The checkpoint service may be
// nil to disable checkpointing.
func NewLocalExecutor(checkpoints *services.CheckpointService, logger zerolog.Logger) *LocalExecutor {
	return &LocalExecutor{checkpoints: checkpoints, logger: logger}
}

// Execute seeds one traverser per start value and drives the frontier until
// every traverser halts. Halted traversers are bulk-merged before being
// returned. Step errors surface unchanged.
func (e *LocalExecutor) Execute(ctx context.Context, t *traversal.Traversal, traversalID string, starts []interface{}, cfg dto.ExecutionConfig) (*dto.ExecutionResult, error) {
	if t == nil {
		return nil, ErrNilTraversal
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	first, err := t.FirstLabel()
	if err != nil {
		return nil, err
	}

	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	frontier := make([]traverser.Admin, 0, len(starts))
	for _, start := range starts {
		frontier = append(frontier, traverser.New(start, first, t.SideEffects()))
	}
	metrics.AddTraversersSeeded(int64(len(frontier)))
	e.logger.Debug().
		Str("traversal", traversalID).
		Int("starts", len(starts)).
		Msg("local execution started")

	halted := traverser.NewTraverserSet()
	began := time.Now()
	steps := 0

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		head := frontier[0]
		frontier = frontier[1:]
		if head.IsHalted() {
			halted.Add(head)
			continue
		}
		if steps >= maxSteps {
			return nil, ErrStepBudgetExceeded
		}

		step, err := t.StepByLabel(head.Future())
		if err != nil {
			return nil, err
		}
		outs, err := step.Process(ctx, head)
		if err != nil {
			return nil, err
		}
		steps++
		metrics.AddStepInvocations(1)

		// Steps that do not route explicitly fall through to the next
		// step in pipeline order, or halt at the end of the pipeline.
		next := t.NextLabel(step.Label())
		if next == "" {
			next = traverser.HaltFuture
		}
		produced := traverser.NewTraverserSet()
		for _, out := range outs {
			if out.Future() == step.Label() {
				out.SetFuture(next)
			}
			if produced.Add(out) {
				metrics.IncBulkMerges()
			}
		}
		for _, out := range produced.Traversers() {
			if out.IsHalted() {
				halted.Add(out)
			} else {
				frontier = append(frontier, out)
			}
		}

		if e.checkpoints.ShouldSave(steps) {
			e.saveCheckpoint(ctx, t, traversalID, steps, frontier)
		}
	}

	metrics.AddTraversersHalted(int64(halted.Len()))
	e.logger.Debug().
		Str("traversal", traversalID).
		Int("steps", steps).
		Uint64("halted_bulk", halted.BulkCount()).
		Msg("local execution finished")

	return &dto.ExecutionResult{
		TraversalID: traversalID,
		Engine:      traversal.EngineLocal.String(),
		Halted:      halted,
		Steps:       steps,
		Duration:    time.Since(began),
		SideEffects: t.SideEffects().Snapshot(),
	}, nil
}

// saveCheckpoint snapshots forked copies so the live frontier keeps its
// attachments. Checkpoint failures are logged, never fatal to the run.
func (e *LocalExecutor) saveCheckpoint(ctx context.Context, t *traversal.Traversal, traversalID string, step int, frontier []traverser.Admin) {
	copies := make([]traverser.Admin, len(frontier))
	for i, tr := range frontier {
		copies[i] = tr.Fork()
	}
	if _, err := e.checkpoints.Save(ctx, traversalID, traversal.EngineLocal.String(), step, copies, t.SideEffects().Snapshot()); err != nil {
		e.logger.Warn().Err(err).Str("traversal", traversalID).Msg("checkpoint save failed")
	}
}
