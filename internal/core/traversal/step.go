package traversal

import (
	"context"

	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

// Step is one stage of a traversal pipeline: a function from one traverser
// to zero or more traversers. Steps derive children and siblings only
// through the traverser Admin surface.
type Step interface {
	// Label identifies the step within its traversal. Labels route
	// traversers: a traverser whose future equals this label is delivered
	// here next.
	Label() string

	// Process consumes one traverser and emits its derivatives. Returning
	// an empty slice filters the traverser out. Internal step errors
	// surface unchanged to the runtime.
	Process(ctx context.Context, t traverser.Admin) ([]traverser.Admin, error)
}

// EngineDependent is implemented by steps whose internal algorithm varies
// with the execution engine (e.g. an in-memory index locally, message
// passing distributed). Strategies notify such steps exactly once per
// application, in step order.
type EngineDependent interface {
	OnEngine(engine Engine)
}
