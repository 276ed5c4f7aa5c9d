package strategy

import (
	"fmt"

	"github.com/whitewum/tinkerpop/internal/core/traversal"
)

// engineDependentStrategy specializes a traversal for its execution engine.
// Under the distributed engine there is no globally consistent side-effect
// store, so all graph-scoped side-effect state is removed. Regardless of
// engine, every engine-aware step is notified of the selection exactly
// once, in step order, so it can switch algorithm variants.
type engineDependentStrategy struct{}

var engineDependentInstance = engineDependentStrategy{}

// EngineDependentStrategy returns the singleton engine-dependent rewrite.
func EngineDependentStrategy() Strategy {
	return engineDependentInstance
}

// Name implements Strategy.
func (engineDependentStrategy) Name() string { return "engine-dependent" }

// Apply implements Strategy. Removing graph-scoped state and re-notifying
// steps with the same engine are both idempotent, so repeated application
// with a fixed engine leaves the traversal observably unchanged.
func (engineDependentStrategy) Apply(t *traversal.Traversal, engine traversal.Engine) {
	switch engine {
	case traversal.EngineLocal:
		// Local execution keeps the shared store intact.
	case traversal.EngineDistributed:
		t.SideEffects().RemoveGraph()
	default:
		panic(fmt.Sprintf("strategy: unknown traversal engine %d", int(engine)))
	}

	for _, step := range t.Steps() {
		if aware, ok := step.(traversal.EngineDependent); ok {
			aware.OnEngine(engine)
		}
	}
}
