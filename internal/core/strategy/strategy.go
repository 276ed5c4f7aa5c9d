// Package strategy provides traversal rewrite passes applied to a pipeline
// before execution. Strategies are stateless singletons: all state they
// touch belongs to the traversal being rewritten, and re-applying a
// strategy with the same engine must leave the traversal observably
// unchanged.
package strategy

import (
	"fmt"

	"github.com/whitewum/tinkerpop/internal/core/traversal"
	"github.com/whitewum/tinkerpop/internal/infrastructure/metrics"
)

// Strategy inspects and mutates a traversal's step sequence and side-effect
// store as a function of the selected engine.
type Strategy interface {
	// Name identifies the strategy for ordering and logs.
	Name() string

	// Apply rewrites the traversal for the given engine. Must be idempotent
	// for a fixed engine, must not fail on an empty or already-rewritten
	// traversal, and panics on an engine outside the closed enumeration:
	// an out-of-range engine is a programming defect, not runtime data.
	Apply(t *traversal.Traversal, engine traversal.Engine)
}

// ApplyAll runs strategies in their registered, documented order and
// records the engine on the traversal. Order matters for strategies with
// dependencies among themselves; each individual strategy remains
// idempotent.
func ApplyAll(strategies []Strategy, t *traversal.Traversal, engine traversal.Engine) {
	if !engine.Valid() {
		panic(fmt.Sprintf("strategy: unknown traversal engine %d", int(engine)))
	}
	t.SetEngine(engine)
	for _, s := range strategies {
		s.Apply(t, engine)
		metrics.IncStrategyApply(s.Name())
	}
}

// Default returns the standard strategy order. The engine-dependent rewrite
// has no ordering dependency on other strategies and may run at any point
// before execution.
func Default() []Strategy {
	return []Strategy{EngineDependentStrategy()}
}
