// Package dto carries the request/response types of the runtime facade.
package dto

import (
	"time"

	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

// ExecutionRequest configures one traversal run.
type ExecutionRequest struct {
	TraversalID string        `json:"traversal_id" validate:"required"`
	Engine      string        `json:"engine" validate:"oneof=local distributed"`
	Starts      []interface{} `json:"starts"`
	Config      ExecutionConfig
}

// ExecutionConfig bounds a run.
type ExecutionConfig struct {
	MaxSteps        int           `json:"max_steps" validate:"gte=0"`
	MaxSupersteps   int           `json:"max_supersteps" validate:"gte=0"`
	Parallelism     int           `json:"parallelism" validate:"gte=0"`
	Timeout         time.Duration `json:"timeout" validate:"gte=0"`
	CheckpointEvery int           `json:"checkpoint_every" validate:"gte=0"`
}

// ExecutionResult is the outcome of one traversal run: the halted
// traversers (bulked) and bookkeeping.
type ExecutionResult struct {
	TraversalID string                 `json:"traversal_id"`
	Engine      string                 `json:"engine"`
	Halted      *traverser.TraverserSet `json:"-"`
	Steps       int                    `json:"steps"`
	Duration    time.Duration          `json:"duration"`
	SideEffects map[string]interface{} `json:"side_effects,omitempty"`
}
