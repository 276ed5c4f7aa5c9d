package traverser

// TraverserSet is a bulking container: adding a traverser that satisfies the
// merge invariant with one already present folds it in by summing bulk
// instead of storing a second instance. Executors use it for per-step
// frontiers and for halted results.
//
// The set is not safe for concurrent use; each execution context owns its
// own set, mirroring traverser ownership.
type TraverserSet struct {
	traversers []Admin
}

// NewTraverserSet returns an empty set.
func NewTraverserSet() *TraverserSet {
	return &TraverserSet{}
}

// Add inserts a traverser, merging it into an existing mergeable instance
// when possible. Traversers with non-equal sacks never merge. Returns true
// when the traverser was merged rather than stored.
func (s *TraverserSet) Add(t Admin) bool {
	for _, existing := range s.traversers {
		if Mergeable(existing, t) {
			// Merge cannot fail after a positive Mergeable check.
			_ = existing.Merge(t)
			return true
		}
	}
	s.traversers = append(s.traversers, t)
	return false
}

// AddAll inserts every traverser, merging where possible.
func (s *TraverserSet) AddAll(ts []Admin) {
	for _, t := range ts {
		s.Add(t)
	}
}

// Traversers returns the distinct traversers in insertion order.
func (s *TraverserSet) Traversers() []Admin {
	out := make([]Admin, len(s.traversers))
	copy(out, s.traversers)
	return out
}

// Len returns the number of distinct traversers held.
func (s *TraverserSet) Len() int {
	return len(s.traversers)
}

// BulkCount returns the total number of logical traversers represented.
func (s *TraverserSet) BulkCount() uint64 {
	var total uint64
	for _, t := range s.traversers {
		total += t.Bulk()
	}
	return total
}

// Clear empties the set.
func (s *TraverserSet) Clear() {
	s.traversers = nil
}
