package traverser

import (
	"github.com/whitewum/tinkerpop/internal/core/structure"
)

// Wire is the serializable form of a detached traverser. Element values are
// carried in typed slots so codecs (msgpack, json) reconstruct concrete
// detached snapshots instead of generic maps.
type Wire struct {
	Value  WireValue   `json:"value" msgpack:"value"`
	Sack   interface{} `json:"sack,omitempty" msgpack:"sack,omitempty"`
	Path   []WireEntry `json:"path,omitempty" msgpack:"path,omitempty"`
	Loops  uint16      `json:"loops" msgpack:"loops"`
	Bulk   uint64      `json:"bulk" msgpack:"bulk"`
	Future string      `json:"future" msgpack:"future"`
}

// WireEntry is one path entry in wire form.
type WireEntry struct {
	Label string    `json:"label" msgpack:"label"`
	Value WireValue `json:"value" msgpack:"value"`
}

// WireValue holds exactly one of a detached vertex, a detached edge, or a
// plain value.
type WireValue struct {
	Vertex *structure.DetachedVertex `json:"vertex,omitempty" msgpack:"vertex,omitempty"`
	Edge   *structure.DetachedEdge   `json:"edge,omitempty" msgpack:"edge,omitempty"`
	Raw    interface{}               `json:"raw,omitempty" msgpack:"raw,omitempty"`
}

func toWireValue(v interface{}) WireValue {
	switch t := v.(type) {
	case *structure.DetachedVertex:
		return WireValue{Vertex: t}
	case *structure.DetachedEdge:
		return WireValue{Edge: t}
	default:
		return WireValue{Raw: v}
	}
}

func (w WireValue) value() interface{} {
	switch {
	case w.Vertex != nil:
		return w.Vertex
	case w.Edge != nil:
		return w.Edge
	default:
		return w.Raw
	}
}

// ToWire converts a detached traverser into its wire form. The traverser
// must already be detached: live references must never leave the process.
func ToWire(t Admin) (*Wire, error) {
	st, ok := t.(*SimpleTraverser)
	if !ok || !st.detached {
		return nil, ErrNotDetached
	}
	entries := st.path.Entries()
	wirePath := make([]WireEntry, len(entries))
	for i, e := range entries {
		wirePath[i] = WireEntry{Label: e.Label, Value: toWireValue(e.Value)}
	}
	return &Wire{
		Value:  toWireValue(st.value),
		Sack:   st.sack,
		Path:   wirePath,
		Loops:  st.loops,
		Bulk:   st.bulk,
		Future: st.future,
	}, nil
}

// FromWire reconstructs a detached traverser from its wire form. The result
// must be attached (and given side effects) before it can flow again.
func FromWire(w *Wire) *SimpleTraverser {
	path := NewPath()
	for _, e := range w.Path {
		path = path.Extend(e.Label, e.Value.value())
	}
	return &SimpleTraverser{
		value:    w.Value.value(),
		sack:     w.Sack,
		path:     path,
		loops:    w.Loops,
		bulk:     w.Bulk,
		future:   w.Future,
		detached: true,
	}
}
