// Package usecases defines executor errors
package usecases

import "errors"

var (
	ErrStepBudgetExceeded = errors.New("step budget exceeded before all traversers halted")
	ErrNilTraversal       = errors.New("traversal cannot be nil")
)
