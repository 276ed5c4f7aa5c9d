package traverser

import (
	"fmt"
	"reflect"

	"github.com/whitewum/tinkerpop/internal/core/structure"
)

// HaltFuture is the reserved future label that marks a traverser terminal.
// The tilde prefix keeps it out of the space of user step labels.
const HaltFuture = "~halt"

// Admin is the privileged mutation and lifecycle surface of a traverser.
// Only steps and the execution runtime should hold an Admin; user-facing
// pipeline construction code sees the Traverser read surface.
type Admin interface {
	Traverser

	// Merge folds other's bulk into this traverser. Both must satisfy the
	// merge invariant: equal value, path, sack, loops and future. After a
	// successful merge the other traverser must be discarded.
	Merge(other Admin) error

	// Split derives a child traverser positioned at value, with the parent's
	// path extended by one (label, value) entry. Loop count and bulk carry
	// over.
	Split(label string, value interface{}) Admin

	// Fork derives a sibling traverser: a full copy of all mutable state
	// with the current value unchanged.
	Fork() Admin

	// Set overwrites the current value in place without extending the path.
	Set(value interface{})

	// IncrLoops increments the loop counter. Called by steps at loop
	// boundaries; the traverser has no awareness of loop topology.
	IncrLoops()

	// ResetLoops sets the loop counter back to zero on loop exit.
	ResetLoops()

	// Future returns the label of the step the traverser is headed to.
	Future() string

	// SetFuture sets the destination step label. Setting HaltFuture makes
	// the traverser terminal.
	SetFuture(label string)

	// IsHalted reports whether the traverser has no future. A halted
	// traverser may still be read but must not be advanced.
	IsHalted() bool

	// SetBulk overwrites the bulk multiplier. Zero is rejected.
	SetBulk(count uint64) error

	// Detach strips every live reference so the traverser can be serialized
	// or moved across a process boundary. Detach transfers ownership: the
	// receiver becomes the detached form, there is no live twin left behind.
	Detach() Admin

	// Attach rebinds a detached traverser to a live host. Only vertices are
	// legal hosts; attaching to a whole graph fails with ErrGraphAttachment.
	// Side effects are not restored by Attach; the receiving context must
	// call SetSideEffects.
	Attach(host structure.Host) error

	// SetSideEffects rebinds the traversal-global side-effect reference,
	// required whenever the traverser crosses into a new side-effect scope.
	SetSideEffects(se SideEffects)
}

// SimpleTraverser is the default Traverser/Admin implementation. A single
// instance is mutated by at most one step at a time; ownership moves
// step-to-step, so no internal locking is required.
type SimpleTraverser struct {
	value       interface{}
	sack        interface{}
	path        *Path
	loops       uint16
	bulk        uint64
	future      string
	sideEffects SideEffects
	detached    bool
}

var _ Admin = (*SimpleTraverser)(nil)

// New creates a traverser at the start of a pipeline: empty path, zero
// loops, bulk one, headed at the given first step label.
func New(value interface{}, firstStep string, se SideEffects) *SimpleTraverser {
	return &SimpleTraverser{
		value:       value,
		path:        NewPath(),
		bulk:        1,
		future:      firstStep,
		sideEffects: se,
	}
}

// Get returns the current object.
func (t *SimpleTraverser) Get() interface{} { return t.value }

// Sack returns the traverser-local sack value.
func (t *SimpleTraverser) Sack() interface{} { return t.sack }

// SetSack replaces the traverser-local sack value.
func (t *SimpleTraverser) SetSack(value interface{}) { t.sack = value }

// Path returns the traverser's history.
func (t *SimpleTraverser) Path() *Path { return t.path }

// Loops returns the loop counter.
func (t *SimpleTraverser) Loops() uint16 { return t.loops }

// Bulk returns the bulk multiplier.
func (t *SimpleTraverser) Bulk() uint64 { return t.bulk }

// SideEffects returns the traversal-global side-effect store.
func (t *SimpleTraverser) SideEffects() SideEffects { return t.sideEffects }

// Merge folds other into t, summing bulk. See Admin.Merge.
func (t *SimpleTraverser) Merge(other Admin) error {
	if !Mergeable(t, other) {
		return fmt.Errorf("%w: value %v versus %v", ErrNotMergeable, t.value, other.Get())
	}
	t.bulk += other.Bulk()
	return nil
}

// Split derives a child traverser at value with the path extended.
func (t *SimpleTraverser) Split(label string, value interface{}) Admin {
	return &SimpleTraverser{
		value:       value,
		sack:        t.sack,
		path:        t.path.Extend(label, value),
		loops:       t.loops,
		bulk:        t.bulk,
		future:      t.future,
		sideEffects: t.sideEffects,
		detached:    t.detached,
	}
}

// Fork derives a sibling traverser with a full copy of all mutable state.
func (t *SimpleTraverser) Fork() Admin {
	clone := *t
	clone.path = t.path.Clone()
	return &clone
}

// Set overwrites the current value without recording a path entry.
func (t *SimpleTraverser) Set(value interface{}) { t.value = value }

// IncrLoops increments the loop counter.
func (t *SimpleTraverser) IncrLoops() { t.loops++ }

// ResetLoops zeroes the loop counter.
func (t *SimpleTraverser) ResetLoops() { t.loops = 0 }

// Future returns the destination step label.
func (t *SimpleTraverser) Future() string { return t.future }

// SetFuture sets the destination step label.
func (t *SimpleTraverser) SetFuture(label string) { t.future = label }

// IsHalted reports whether the traverser's future is the halt sentinel.
func (t *SimpleTraverser) IsHalted() bool { return t.future == HaltFuture }

// SetBulk overwrites the bulk multiplier.
func (t *SimpleTraverser) SetBulk(count uint64) error {
	if count == 0 {
		return ErrZeroBulk
	}
	t.bulk = count
	return nil
}

// Detach strips live references in place and returns the receiver. The
// current value and every path entry become self-contained snapshots; the
// side-effect reference is dropped, to be rebound on the receiving side.
func (t *SimpleTraverser) Detach() Admin {
	if t.detached {
		return t
	}
	t.value = structure.DetachValue(t.value)
	t.path.detach()
	t.sideEffects = nil
	t.detached = true
	return t
}

// Attach rebinds the traverser to a live host vertex. See Admin.Attach.
func (t *SimpleTraverser) Attach(host structure.Host) error {
	if host == nil {
		return ErrNilHost
	}
	if _, isGraph := host.(structure.Graph); isGraph {
		return ErrGraphAttachment
	}
	vertex, ok := host.(structure.Vertex)
	if !ok {
		return fmt.Errorf("%w: %T", ErrGraphAttachment, host)
	}
	if !t.detached {
		return ErrAlreadyAttached
	}
	value, err := structure.AttachValue(t.value, vertex)
	if err != nil {
		return err
	}
	if err := t.path.attach(vertex); err != nil {
		return err
	}
	t.value = value
	t.detached = false
	return nil
}

// SetSideEffects rebinds the traversal-global side-effect reference.
func (t *SimpleTraverser) SetSideEffects(se SideEffects) { t.sideEffects = se }

// Detached reports whether the traverser is in its migratable form.
func (t *SimpleTraverser) Detached() bool { return t.detached }

// Mergeable reports whether two traversers satisfy the merge invariant:
// pairwise equal value, path, sack, loops and future.
func Mergeable(a, b Admin) bool {
	if a.Loops() != b.Loops() {
		return false
	}
	if a.Future() != b.Future() {
		return false
	}
	if !reflect.DeepEqual(a.Get(), b.Get()) {
		return false
	}
	if !reflect.DeepEqual(a.Sack(), b.Sack()) {
		return false
	}
	return a.Path().Equal(b.Path())
}
