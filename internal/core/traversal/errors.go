// Package traversal defines domain-specific errors
package traversal

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Traversal structure errors
	ErrNilStep           = errors.New("step cannot be nil")
	ErrEmptyStepLabel    = errors.New("step label cannot be empty")
	ErrReservedStepLabel = errors.New("step label is reserved")
	ErrDuplicateStep     = errors.New("duplicate step label")
	ErrStepNotFound      = errors.New("step not found")
	ErrNoSteps           = errors.New("traversal has no steps")
	ErrUnknownEngine     = errors.New("unknown engine")

	// Side-effect errors
	ErrSideEffectNotFound = errors.New("side effect key not set")
)
