package tinkerpop

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	graphrepo "github.com/whitewum/tinkerpop/internal/adapters/repository/graph"
	memory "github.com/whitewum/tinkerpop/internal/adapters/repository/memory"
	"github.com/whitewum/tinkerpop/internal/app/dto"
	"github.com/whitewum/tinkerpop/internal/app/services"
	"github.com/whitewum/tinkerpop/internal/app/usecases"
	"github.com/whitewum/tinkerpop/internal/core/checkpoint"
	"github.com/whitewum/tinkerpop/internal/core/strategy"
	"github.com/whitewum/tinkerpop/internal/core/structure"
	"github.com/whitewum/tinkerpop/internal/core/traversal"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
	"github.com/whitewum/tinkerpop/pkg/serialization"
	"github.com/whitewum/tinkerpop/pkg/validation"
)

// Re-export core types for convenience
type (
	Traversal    = traversal.Traversal
	Step         = traversal.Step
	Engine       = traversal.Engine
	Traverser    = traverser.Traverser
	Admin        = traverser.Admin
	TraverserSet = traverser.TraverserSet
	Graph        = structure.Graph
	Vertex       = structure.Vertex
	Edge         = structure.Edge
)

const (
	EngineLocal       = traversal.EngineLocal
	EngineDistributed = traversal.EngineDistributed
)

// NewTraversal creates an empty traversal pipeline.
func NewTraversal() *Traversal { return traversal.New() }

// Runtime is a façade to build and run traversals without importing
// internal packages directly. The default runtime uses in-memory components
// and is suitable for local usage and tests.
type Runtime struct {
	graph       *graphrepo.InMemoryGraph
	strategies  []strategy.Strategy
	checkpoints *services.CheckpointService
	local       *usecases.LocalExecutor
	distributed *usecases.DistributedExecutor
	logger      zerolog.Logger
}

// Option customizes a Runtime.
type Option func(*options)

type options struct {
	saver           checkpoint.Saver
	serializer      *serialization.Serializer
	checkpointEvery int
	strategies      []strategy.Strategy
	logger          *zerolog.Logger
}

// WithSaver replaces the in-memory checkpoint saver.
func WithSaver(s checkpoint.Saver) Option {
	return func(o *options) { o.saver = s }
}

// WithSerializer replaces the checkpoint/migration serializer.
func WithSerializer(s *serialization.Serializer) Option {
	return func(o *options) { o.serializer = s }
}

// WithCheckpointEvery enables periodic checkpointing.
func WithCheckpointEvery(every int) Option {
	return func(o *options) { o.checkpointEvery = every }
}

// WithStrategies appends strategies applied after the defaults.
func WithStrategies(ss ...strategy.Strategy) Option {
	return func(o *options) { o.strategies = append(o.strategies, ss...) }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = &l }
}

// NewRuntime constructs a runtime with in-memory defaults: an in-memory
// graph, an in-memory checkpoint saver and the default strategy chain.
func NewRuntime(graphID string, opts ...Option) *Runtime {
	o := &options{
		saver:      memory.NewCheckpointSaver(),
		strategies: strategy.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if o.logger != nil {
		logger = *o.logger
	}

	graph := graphrepo.NewInMemoryGraph(graphID)
	checkpoints := services.NewCheckpointService(o.saver, o.serializer, o.checkpointEvery)
	return &Runtime{
		graph:       graph,
		strategies:  o.strategies,
		checkpoints: checkpoints,
		local:       usecases.NewLocalExecutor(checkpoints, logger),
		distributed: usecases.NewDistributedExecutor(graph, checkpoints, logger),
		logger:      logger,
	}
}

// Graph exposes the runtime's graph for seeding vertices and edges.
func (rt *Runtime) Graph() *graphrepo.InMemoryGraph { return rt.graph }

// Checkpoints exposes the checkpoint service for load/resume flows.
func (rt *Runtime) Checkpoints() *services.CheckpointService { return rt.checkpoints }

// Execute validates the request, applies the strategy chain for the
// requested engine and runs the traversal on it.
func (rt *Runtime) Execute(ctx context.Context, t *Traversal, req *dto.ExecutionRequest) (*dto.ExecutionResult, error) {
	if t == nil {
		return nil, usecases.ErrNilTraversal
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	engine, err := traversal.ParseEngine(req.Engine)
	if err != nil {
		return nil, err
	}

	strategy.ApplyAll(rt.strategies, t, engine)

	switch engine {
	case traversal.EngineDistributed:
		return rt.distributed.Execute(ctx, t, req.TraversalID, req.Starts, req.Config)
	default:
		return rt.local.Execute(ctx, t, req.TraversalID, req.Starts, req.Config)
	}
}

// RunSimple executes a traversal locally with a minimal request.
func (rt *Runtime) RunSimple(ctx context.Context, t *Traversal, traversalID string, starts []interface{}) (*dto.ExecutionResult, error) {
	req := &dto.ExecutionRequest{
		TraversalID: traversalID,
		Engine:      traversal.EngineLocal.String(),
		Starts:      starts,
	}
	return rt.Execute(ctx, t, req)
}
