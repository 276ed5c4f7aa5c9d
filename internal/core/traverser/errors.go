// Package traverser defines domain-specific errors
package traverser

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Path errors
	ErrPathLabelNotFound = errors.New("path label not recorded")

	// Ordering errors
	ErrNotComparable = errors.New("traverser value is not comparable")

	// Merge errors
	ErrNotMergeable = errors.New("traversers are not mergeable")
	ErrZeroBulk     = errors.New("bulk must be at least 1")

	// Migration errors
	ErrGraphAttachment = errors.New("a traverser can only exist at vertices, not the graph")
	ErrAlreadyAttached = errors.New("traverser is already attached")
	ErrNotDetached     = errors.New("traverser is not detached")
	ErrNilHost         = errors.New("attach host cannot be nil")
)
