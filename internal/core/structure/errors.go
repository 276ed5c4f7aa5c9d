// Package structure defines domain-specific errors
package structure

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Element errors
	ErrElementNotFound  = errors.New("element not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidElementID = errors.New("invalid element ID")
	ErrInvalidLabel     = errors.New("invalid element label")
	ErrDuplicateVertex  = errors.New("duplicate vertex ID")

	// Attachment errors
	ErrHostMismatch    = errors.New("detached element does not belong to host")
	ErrAlreadyDetached = errors.New("element is already detached")
	ErrNotDetached     = errors.New("element is not a detached snapshot")
)
