package structure

// Detached element snapshots. A detached element is a self-contained copy of
// a live element: identifiers and property values only, no references into a
// storage backend. Detached forms are what cross process boundaries; Attach
// is the only way back to a live element.

// Attachable can be resolved back into a live object given a host vertex.
type Attachable interface {
	// Attach resolves the snapshot against the host, which must own the
	// underlying element within the current execution context.
	Attach(host Vertex) (interface{}, error)
}

// DetachedVertex is a serializable snapshot of a vertex.
type DetachedVertex struct {
	VertexID    string                 `json:"id" msgpack:"id"`
	VertexLabel string                 `json:"label" msgpack:"label"`
	Properties  map[string]interface{} `json:"properties,omitempty" msgpack:"properties,omitempty"`
}

// ID returns the snapshot identity.
func (d *DetachedVertex) ID() string { return d.VertexID }

// Label returns the snapshot label.
func (d *DetachedVertex) Label() string { return d.VertexLabel }

// Attach resolves the snapshot to the host vertex itself. A detached vertex
// may only attach to the vertex it was detached from.
func (d *DetachedVertex) Attach(host Vertex) (interface{}, error) {
	if host == nil || host.ID() != d.VertexID {
		return nil, ErrHostMismatch
	}
	return host, nil
}

// DetachedEdge is a serializable snapshot of an edge. Endpoints are kept as
// identifiers only.
type DetachedEdge struct {
	EdgeID     string                 `json:"id" msgpack:"id"`
	EdgeLabel  string                 `json:"label" msgpack:"label"`
	OutV       string                 `json:"outV" msgpack:"outV"`
	InV        string                 `json:"inV" msgpack:"inV"`
	Properties map[string]interface{} `json:"properties,omitempty" msgpack:"properties,omitempty"`
}

// ID returns the snapshot identity.
func (d *DetachedEdge) ID() string { return d.EdgeID }

// Label returns the snapshot label.
func (d *DetachedEdge) Label() string { return d.EdgeLabel }

// Attach resolves the snapshot by scanning the host's incident edges. The
// host must be one of the edge's endpoints.
func (d *DetachedEdge) Attach(host Vertex) (interface{}, error) {
	if host == nil {
		return nil, ErrHostMismatch
	}
	if host.ID() != d.OutV && host.ID() != d.InV {
		return nil, ErrHostMismatch
	}
	edges, err := host.Edges(DirectionBoth)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if e.ID() == d.EdgeID {
			return e, nil
		}
	}
	return nil, ErrElementNotFound
}

// DetachVertex copies a live vertex into a detached snapshot.
func DetachVertex(v Vertex) *DetachedVertex {
	props := make(map[string]interface{})
	for _, key := range v.PropertyKeys() {
		if val, err := v.Property(key); err == nil {
			props[key] = val
		}
	}
	if len(props) == 0 {
		props = nil
	}
	return &DetachedVertex{VertexID: v.ID(), VertexLabel: v.Label(), Properties: props}
}

// DetachEdge copies a live edge into a detached snapshot.
func DetachEdge(e Edge) *DetachedEdge {
	return &DetachedEdge{
		EdgeID:    e.ID(),
		EdgeLabel: e.Label(),
		OutV:      e.OutVertex().ID(),
		InV:       e.InVertex().ID(),
	}
}

// DetachValue converts live elements into detached snapshots. Non-element
// values are returned unchanged; already-detached values pass through.
func DetachValue(v interface{}) interface{} {
	switch t := v.(type) {
	case *DetachedVertex, *DetachedEdge:
		return t
	case Vertex:
		return DetachVertex(t)
	case Edge:
		return DetachEdge(t)
	default:
		return v
	}
}

// AttachValue resolves detached snapshots against a host vertex. Values that
// are not detached snapshots are returned unchanged.
func AttachValue(v interface{}, host Vertex) (interface{}, error) {
	if a, ok := v.(Attachable); ok {
		return a.Attach(host)
	}
	return v, nil
}

// IsDetached reports whether the value is a detached element snapshot.
func IsDetached(v interface{}) bool {
	switch v.(type) {
	case *DetachedVertex, *DetachedEdge:
		return true
	default:
		return false
	}
}
