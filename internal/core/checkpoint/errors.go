// Package checkpoint defines domain-specific errors
package checkpoint

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Checkpoint validation errors
	ErrInvalidCheckpointID = errors.New("invalid checkpoint ID")
	ErrInvalidTraversalID  = errors.New("invalid traversal ID")
	ErrInvalidSuperstep    = errors.New("superstep cannot be negative")
	ErrCheckpointNotFound  = errors.New("checkpoint not found")

	// Filter validation errors
	ErrInvalidLimit     = errors.New("limit cannot be negative")
	ErrInvalidOffset    = errors.New("offset cannot be negative")
	ErrInvalidTimeRange = errors.New("invalid time range: since is after before")
)
