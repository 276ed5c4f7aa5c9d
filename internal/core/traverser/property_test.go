package traverser

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyBulkConservation checks that bulk merging in a TraverserSet
// never loses or invents logical traversers: the set's total bulk always
// equals the sum of the bulks added.
func TestPropertyBulkConservation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(0, 5), 1, 50).Draw(rt, "values")
		bulks := rapid.SliceOfN(rapid.Uint64Range(1, 1000), len(values), len(values)).Draw(rt, "bulks")

		s := NewTraverserSet()
		var total uint64
		for i, v := range values {
			tr := New(v, "s", nil)
			if err := tr.SetBulk(bulks[i]); err != nil {
				rt.Fatalf("SetBulk failed: %v", err)
			}
			s.Add(tr)
			total += bulks[i]
		}

		if s.BulkCount() != total {
			rt.Fatalf("bulk not conserved: set holds %d, added %d", s.BulkCount(), total)
		}
		if s.Len() > 6 {
			rt.Fatalf("more distinct traversers than distinct values: %d", s.Len())
		}
	})
}

// TestPropertyMergeableSymmetric checks that the merge invariant is
// symmetric: if a can absorb b, then b can absorb a.
func TestPropertyMergeableSymmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		gen := func(name string) *SimpleTraverser {
			tr := New(rapid.IntRange(0, 3).Draw(rt, name+"-value"), rapid.SampledFrom([]string{"s", "t"}).Draw(rt, name+"-future"), nil)
			for i := rapid.IntRange(0, 2).Draw(rt, name+"-loops"); i > 0; i-- {
				tr.IncrLoops()
			}
			return tr
		}
		a := gen("a")
		b := gen("b")

		if Mergeable(a, b) != Mergeable(b, a) {
			rt.Fatalf("mergeable is not symmetric for %v and %v", a, b)
		}
	})
}

// TestPropertySplitPreservesParent checks that splitting never mutates the
// parent's path, whatever sequence of splits is performed.
func TestPropertySplitPreservesParent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parent := New(0, "s", nil)
		splits := rapid.IntRange(1, 20).Draw(rt, "splits")

		for i := 0; i < splits; i++ {
			child := parent.Split("a", i)
			if child.Path().Len() != 1 {
				rt.Fatalf("child path length %d, want 1", child.Path().Len())
			}
		}
		if parent.Path().Len() != 0 {
			rt.Fatalf("parent path mutated: length %d", parent.Path().Len())
		}
	})
}
