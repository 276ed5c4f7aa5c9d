// Package graphson defines codec errors
package graphson

import "errors"

var (
	ErrUnsupportedType = errors.New("no serializer registered for type")
	ErrUnknownClass    = errors.New("no deserializer registered for class")
	ErrInvalidDocument = errors.New("invalid document")
	ErrNilModule       = errors.New("module cannot be nil")
)
