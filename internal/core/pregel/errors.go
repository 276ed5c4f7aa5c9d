package pregel

import "errors"

var (
	ErrNilGraph          = errors.New("graph cannot be nil")
	ErrNilTraversal      = errors.New("traversal cannot be nil")
	ErrNonVertexStart    = errors.New("distributed execution must start at vertices")
	ErrSuperstepExceeded = errors.New("superstep budget exceeded before all traversers halted")
)
