// Package traverser provides the unit of execution state that flows through
// a traversal pipeline. A traverser carries its current value, a local sack,
// its path history, loop and bulk counters and a reference to the
// traversal-global side effects.
//
// The read surface (Traverser) is all ordinary pipeline code may touch; the
// mutation surface (Admin) is reserved for steps and the execution runtime.
package traverser

import (
	"fmt"
)

// SideEffects is the minimal capability a traverser needs from the
// traversal-global side-effect store. The concrete store lives with the
// traversal; traversers only hold a reference and forward reads.
type SideEffects interface {
	// Get returns the value stored under key, or an error when the key was
	// never set.
	Get(key string) (interface{}, error)

	// Set stores a value under key, visible to every traverser of the
	// traversal.
	Set(key string, value interface{})

	// Keys lists the populated side-effect keys.
	Keys() []string
}

// Traverser is the read-only contract of a unit of traversal state.
// PRINCIPLES:
// - ISP: the minimal surface pipeline-construction code may use
// - mutation happens only through Admin, inside steps and the runtime
type Traverser interface {
	// Get returns the object the traverser is currently at.
	Get() interface{}

	// Sack returns the traverser-local sack value, or nil when unset.
	Sack() interface{}

	// SetSack replaces the traverser-local sack value.
	SetSack(value interface{})

	// Path returns the traverser's history.
	Path() *Path

	// Loops returns the number of times the traverser has gone through the
	// current looping section.
	Loops() uint16

	// Bulk returns the number of logically identical traversers this
	// instance represents. Always >= 1.
	Bulk() uint64

	// SideEffects returns the traversal-global side-effect store.
	SideEffects() SideEffects
}

// PathValue returns the object recorded under the step label in the
// traverser's path history. Layered over the minimal read surface rather
// than mixed into it.
func PathValue(t Traverser, label string) (interface{}, error) {
	return t.Path().Get(label)
}

// SideEffectValue returns a single keyed value from the traversal-global
// side effects of the traverser.
func SideEffectValue(t Traverser, key string) (interface{}, error) {
	return t.SideEffects().Get(key)
}

// Compare orders two traversers by the natural order of their current
// values. Values of different or non-orderable types fail with an error
// naming the offending type; there is no silent fallback order.
func Compare(a, b Traverser) (int, error) {
	switch av := a.Get().(type) {
	case int:
		if bv, ok := b.Get().(int); ok {
			return compareOrdered(av, bv), nil
		}
	case int64:
		if bv, ok := b.Get().(int64); ok {
			return compareOrdered(av, bv), nil
		}
	case uint64:
		if bv, ok := b.Get().(uint64); ok {
			return compareOrdered(av, bv), nil
		}
	case float64:
		if bv, ok := b.Get().(float64); ok {
			return compareOrdered(av, bv), nil
		}
	case string:
		if bv, ok := b.Get().(string); ok {
			return compareOrdered(av, bv), nil
		}
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotComparable, a.Get())
	}
	return 0, fmt.Errorf("%w: %T versus %T", ErrNotComparable, a.Get(), b.Get())
}

func compareOrdered[T int | int64 | uint64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
