package traverser

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/whitewum/tinkerpop/internal/core/structure"
)

// Entry is one recorded (step-label, value) pair of a traverser's history.
type Entry struct {
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// Path is the append-only history of a traverser: the ordered sequence of
// (step-label, value) entries recorded as it flowed through the pipeline.
// Extension copies, so a child path never aliases its parent's backing array.
type Path struct {
	entries []Entry
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Extend returns a new path with one additional entry appended. The receiver
// is never mutated.
func (p *Path) Extend(label string, value interface{}) *Path {
	entries := make([]Entry, len(p.entries), len(p.entries)+1)
	copy(entries, p.entries)
	return &Path{entries: append(entries, Entry{Label: label, Value: value})}
}

// Clone returns a deep copy of the entry sequence. Values themselves are
// shared; entries are owned by the clone.
func (p *Path) Clone() *Path {
	entries := make([]Entry, len(p.entries))
	copy(entries, p.entries)
	return &Path{entries: entries}
}

// Get returns the value recorded under label. If exactly one entry matches,
// that value is returned; if several match, all values are returned as a
// slice in recording order. A label that was never recorded is an error, so
// callers can distinguish "never set" from "set to empty".
func (p *Path) Get(label string) (interface{}, error) {
	var matches []interface{}
	for _, e := range p.entries {
		if e.Label == label {
			matches = append(matches, e.Value)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrPathLabelNotFound, label)
	case 1:
		return matches[0], nil
	default:
		return matches, nil
	}
}

// Len returns the number of recorded entries.
func (p *Path) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the recorded entries in order.
func (p *Path) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Labels returns the recorded labels in order.
func (p *Path) Labels() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Label
	}
	return out
}

// Equal reports structural equality of two paths.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.entries) != len(other.entries) {
		return false
	}
	for i := range p.entries {
		if p.entries[i].Label != other.entries[i].Label {
			return false
		}
		if !reflect.DeepEqual(p.entries[i].Value, other.entries[i].Value) {
			return false
		}
	}
	return true
}

// detach replaces live elements in the path with detached snapshots.
func (p *Path) detach() {
	for i := range p.entries {
		p.entries[i].Value = structure.DetachValue(p.entries[i].Value)
	}
}

// attach resolves detached snapshots in the path against the host vertex.
// History entries that belong to other hosts stay detached; only the host's
// own elements become live again.
func (p *Path) attach(host structure.Vertex) error {
	for i := range p.entries {
		v, err := structure.AttachValue(p.entries[i].Value, host)
		if err != nil {
			if errors.Is(err, structure.ErrHostMismatch) {
				continue
			}
			return err
		}
		p.entries[i].Value = v
	}
	return nil
}
