// Package pregel runs a traversal vertex-centric: one pipeline instance per
// graph vertex, bulk-synchronous supersteps, and traversers migrating
// between vertices as serialized messages. Side effects are vertex-local;
// the engine-dependent strategy must have rewritten the traversal for the
// distributed engine before it runs here.
package pregel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/whitewum/tinkerpop/internal/core/structure"
	"github.com/whitewum/tinkerpop/internal/core/traversal"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
	"github.com/whitewum/tinkerpop/internal/infrastructure/metrics"
	"github.com/whitewum/tinkerpop/pkg/serialization"
)

// defaultMaxSupersteps bounds runaway traversals when no limit is set.
const defaultMaxSupersteps = 100

// Config holds engine configuration.
type Config struct {
	MaxSupersteps int
	Parallelism   int
	QueueCapacity int
	Timeout       time.Duration
}

// CheckpointFunc snapshots the in-flight frontier between supersteps. The
// frontier traversers passed in are detached.
type CheckpointFunc func(ctx context.Context, step int, frontier []traverser.Admin) error

// Engine is the distributed executor.
type Engine struct {
	graph      structure.Graph
	trav       *traversal.Traversal
	serializer *serialization.Serializer
	config     Config
	logger     zerolog.Logger

	aggregator *MessageAggregator
	scheduler  *Scheduler

	checkpoint      CheckpointFunc
	checkpointEvery int

	haltedMu sync.Mutex
	halted   *traverser.TraverserSet

	scopesMu sync.Mutex
	scopes   map[string]*traversal.SideEffects
}

// NewEngine creates a distributed engine over a graph and a traversal
// already rewritten for EngineDistributed. A nil serializer defaults to
// the migration serializer.
func NewEngine(graph structure.Graph, trav *traversal.Traversal, serializer *serialization.Serializer, config Config, logger zerolog.Logger) (*Engine, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	if trav == nil {
		return nil, ErrNilTraversal
	}
	if serializer == nil {
		serializer = serialization.Default()
	}
	if config.MaxSupersteps <= 0 {
		config.MaxSupersteps = defaultMaxSupersteps
	}
	return &Engine{
		graph:      graph,
		trav:       trav,
		serializer: serializer,
		config:     config,
		logger:     logger,
		aggregator: NewMessageAggregator(),
		halted:     traverser.NewTraverserSet(),
		scopes:     make(map[string]*traversal.SideEffects),
	}, nil
}

// SetCheckpoint installs a checkpoint hook invoked every `every`
// supersteps; zero disables it.
func (e *Engine) SetCheckpoint(fn CheckpointFunc, every int) {
	e.checkpoint = fn
	e.checkpointEvery = every
}

// Run seeds one traverser per start vertex and executes supersteps until no
// messages remain. Returns the bulk-merged halted traversers (in detached
// form) and the number of supersteps executed.
func (e *Engine) Run(ctx context.Context, starts []interface{}) (*traverser.TraverserSet, int, error) {
	if err := e.trav.Validate(); err != nil {
		return nil, 0, err
	}
	first, err := e.trav.FirstLabel()
	if err != nil {
		return nil, 0, err
	}
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	if err := e.seed(starts, first); err != nil {
		return nil, 0, err
	}
	metrics.AddTraversersSeeded(int64(len(starts)))

	e.scheduler = NewScheduler(e.config.Parallelism, e.config.QueueCapacity)
	e.scheduler.Start()
	defer e.scheduler.Stop()

	step := 0
	for e.aggregator.HasMessages() {
		select {
		case <-ctx.Done():
			return nil, step, ctx.Err()
		default:
		}
		if step >= e.config.MaxSupersteps {
			return nil, step, ErrSuperstepExceeded
		}

		ss := NewSuperstep(step)
		for partition, msgs := range e.aggregator.Drain() {
			ss.AddPartition()
			e.scheduler.Schedule(partitionTask{
				partition: partition,
				messages:  msgs,
				run: func(partition string, messages []*Message) error {
					return e.processPartition(ctx, step, partition, messages)
				},
				done: ss.CompletePartition,
			})
		}
		if err := ss.Wait(); err != nil {
			return nil, step, err
		}
		metrics.IncSupersteps()
		e.logger.Debug().
			Int("superstep", step).
			Int("partitions", ss.Partitions()).
			Dur("duration", ss.Duration()).
			Msg("superstep complete")

		step++
		if e.checkpoint != nil && e.checkpointEvery > 0 && step%e.checkpointEvery == 0 {
			if err := e.saveCheckpoint(ctx, step); err != nil {
				e.logger.Warn().Err(err).Int("superstep", step).Msg("checkpoint save failed")
			}
		}
	}

	e.haltedMu.Lock()
	halted := e.halted
	e.haltedMu.Unlock()
	metrics.AddTraversersHalted(int64(halted.Len()))
	return halted, step, nil
}

// seed converts the start vertices into superstep-zero messages. The
// distributed engine is vertex-centric: every traverser originates at a
// vertex.
func (e *Engine) seed(starts []interface{}, first string) error {
	for _, start := range starts {
		vertex, ok := start.(structure.Vertex)
		if !ok {
			return fmt.Errorf("%w: got %T", ErrNonVertexStart, start)
		}
		tr := traverser.New(vertex, first, nil)
		if err := e.send(tr, vertex.ID(), 0); err != nil {
			return err
		}
	}
	return nil
}

// send detaches, serializes and queues a traverser for the partition that
// hosts its value.
func (e *Engine) send(tr traverser.Admin, current string, step int) error {
	wire, err := traverser.ToWire(tr.Detach())
	if err != nil {
		return err
	}
	payload, err := e.serializer.Serialize(wire)
	if err != nil {
		return fmt.Errorf("failed to serialize traverser: %w", err)
	}
	e.aggregator.Add(&Message{To: routePartition(wire, current), Payload: payload, Step: step})
	metrics.AddTraverserMessages(1)
	return nil
}

// routePartition picks the destination for a wire traverser: element values
// migrate to their vertex, everything else stays on its current partition.
func routePartition(w *traverser.Wire, current string) string {
	switch {
	case w.Value.Vertex != nil:
		return w.Value.Vertex.VertexID
	case w.Value.Edge != nil:
		return w.Value.Edge.OutV
	default:
		return current
	}
}

// processPartition runs one partition's inbound traversers through one step
// of the vertex-local pipeline instance.
func (e *Engine) processPartition(ctx context.Context, step int, partition string, messages []*Message) error {
	host, err := e.graph.Vertex(partition)
	if err != nil {
		return err
	}
	scope := e.scopeFor(partition)

	// Deliver: deserialize and bulk-merge equivalent traversers before
	// attaching, so one merged instance does the work of many.
	inbound := traverser.NewTraverserSet()
	for _, msg := range messages {
		var wire traverser.Wire
		if err := e.serializer.Deserialize(msg.Payload, &wire); err != nil {
			return fmt.Errorf("failed to deserialize traverser: %w", err)
		}
		if inbound.Add(traverser.FromWire(&wire)) {
			metrics.IncBulkMerges()
		}
	}

	for _, tr := range inbound.Traversers() {
		if err := tr.Attach(host); err != nil {
			return err
		}
		tr.SetSideEffects(scope)
		if tr.IsHalted() {
			e.collectHalted(tr)
			continue
		}

		stepImpl, err := e.trav.StepByLabel(tr.Future())
		if err != nil {
			return err
		}
		outs, err := stepImpl.Process(ctx, tr)
		if err != nil {
			return err
		}
		metrics.AddStepInvocations(1)

		next := e.trav.NextLabel(stepImpl.Label())
		if next == "" {
			next = traverser.HaltFuture
		}
		for _, out := range outs {
			if out.Future() == stepImpl.Label() {
				out.SetFuture(next)
			}
			if out.IsHalted() {
				e.collectHalted(out)
				continue
			}
			if err := e.send(out, partition, step+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectHalted detaches a finished traverser and folds it into the global
// result set.
func (e *Engine) collectHalted(tr traverser.Admin) {
	detached := tr.Detach()
	e.haltedMu.Lock()
	defer e.haltedMu.Unlock()
	if e.halted.Add(detached) {
		metrics.IncBulkMerges()
	}
}

// scopeFor returns the vertex-local side-effect store for a partition,
// creating it on first use. There is no globally consistent store under
// distributed execution.
func (e *Engine) scopeFor(partition string) *traversal.SideEffects {
	e.scopesMu.Lock()
	defer e.scopesMu.Unlock()
	scope, ok := e.scopes[partition]
	if !ok {
		scope = traversal.NewSideEffects()
		e.scopes[partition] = scope
	}
	return scope
}

// saveCheckpoint snapshots the queued frontier through the installed hook.
func (e *Engine) saveCheckpoint(ctx context.Context, step int) error {
	var frontier []traverser.Admin
	for _, msgs := range e.aggregator.Snapshot() {
		for _, msg := range msgs {
			var wire traverser.Wire
			if err := e.serializer.Deserialize(msg.Payload, &wire); err != nil {
				return err
			}
			frontier = append(frontier, traverser.FromWire(&wire))
		}
	}
	return e.checkpoint(ctx, step, frontier)
}
