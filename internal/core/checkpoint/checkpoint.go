// Package checkpoint provides the core checkpoint domain entities and
// interfaces following Clean Architecture principles with zero external
// dependencies.
package checkpoint

import (
	"time"
)

// Checkpoint captures a traversal execution between steps: the frontier of
// in-flight traversers (in detached wire form, serialized), the side-effect
// snapshot and position bookkeeping. A checkpoint is self-contained; it
// must never hold live graph references.
type Checkpoint struct {
	ID          string                 `json:"id"`
	TraversalID string                 `json:"traversal_id"`
	Superstep   int                    `json:"superstep"`
	Frontier    [][]byte               `json:"frontier"`
	SideEffects map[string]interface{} `json:"side_effects,omitempty"`
	Metadata    Metadata               `json:"metadata"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
}

// Metadata carries additional information about a checkpoint.
type Metadata struct {
	Engine    string   `json:"engine"`
	HaltCount uint64   `json:"halt_count,omitempty"`
	CreatedBy string   `json:"created_by,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Validate ensures checkpoint integrity.
func (c *Checkpoint) Validate() error {
	if c.ID == "" {
		return ErrInvalidCheckpointID
	}
	if c.TraversalID == "" {
		return ErrInvalidTraversalID
	}
	if c.Superstep < 0 {
		return ErrInvalidSuperstep
	}
	return nil
}
