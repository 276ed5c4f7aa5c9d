// Package structure provides the core property-graph contracts
// following Clean Architecture principles with zero external dependencies.
// Storage backends implement these interfaces; the traversal machinery
// consumes them without knowing the backing engine.
package structure

// Element is the base capability shared by vertices, edges and properties.
// PRINCIPLES:
// - ISP: smallest identity surface a traverser needs
// - DIP: core depends on this contract, never on a storage engine
type Element interface {
	// ID returns the stable identifier of the element. It must remain
	// resolvable for the lifetime of the execution context that produced it.
	ID() string

	// Label returns the classifying label of the element.
	Label() string
}

// Vertex is a node in the graph. Vertices are the only legal attach target
// for migrating traversers.
type Vertex interface {
	Element
	Host

	// Edges returns the edges incident to this vertex in the given direction.
	Edges(direction Direction) ([]Edge, error)

	// Property returns the value stored under key, or ErrPropertyNotFound.
	Property(key string) (interface{}, error)

	// PropertyKeys lists the populated property keys.
	PropertyKeys() []string
}

// Edge connects two vertices.
type Edge interface {
	Element

	// OutVertex is the tail (source) of the edge.
	OutVertex() Vertex

	// InVertex is the head (target) of the edge.
	InVertex() Vertex

	// Property returns the value stored under key, or ErrPropertyNotFound.
	Property(key string) (interface{}, error)
}

// Property is a single key/value entry owned by an element.
type Property struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Direction orients edge lookups relative to a vertex.
type Direction int

const (
	// DirectionOut selects edges leaving the vertex.
	DirectionOut Direction = iota
	// DirectionIn selects edges arriving at the vertex.
	DirectionIn
	// DirectionBoth selects edges in either orientation.
	DirectionBoth
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "out"
	case DirectionIn:
		return "in"
	case DirectionBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Host marks a structure a detached object may be re-attached to. A host
// resolves stable identifiers back into live elements within the current
// execution context. Vertices are valid hosts; whole graphs are not valid
// attach targets for traversers (see traverser.Admin.Attach).
type Host interface {
	// HostID returns the identity of the host used to validate attachment.
	HostID() string
}

// Graph is the top-level structure capability. It is a Host so that callers
// can attempt (and be explicitly refused) graph-level attachment.
type Graph interface {
	Host

	// Vertex resolves a vertex by id, or ErrElementNotFound.
	Vertex(id string) (Vertex, error)

	// Vertices lists all vertices. Intended for small graphs and tests.
	Vertices() ([]Vertex, error)
}
