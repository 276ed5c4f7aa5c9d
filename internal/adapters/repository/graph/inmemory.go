// Package graphrepo provides an in-memory property graph implementing the
// core structure contracts. It is the default backend for local execution
// and tests.
package graphrepo

import (
	"fmt"
	"sync"

	"github.com/whitewum/tinkerpop/internal/core/structure"
)

// InMemoryGraph is a thread-safe adjacency-map property graph.
// PRINCIPLES:
// - KISS: map-based storage behind the structure contracts
// - SRP: storage only; traversal semantics live in core
type InMemoryGraph struct {
	mu       sync.RWMutex
	id       string
	vertices map[string]*memVertex
}

// NewInMemoryGraph creates an empty graph with the given identity.
func NewInMemoryGraph(id string) *InMemoryGraph {
	return &InMemoryGraph{
		id:       id,
		vertices: make(map[string]*memVertex),
	}
}

var _ structure.Graph = (*InMemoryGraph)(nil)

// HostID implements structure.Host. Graphs are hosts only so that
// graph-level attachment can be refused explicitly by the traverser layer.
func (g *InMemoryGraph) HostID() string { return g.id }

// AddVertex creates a vertex.
func (g *InMemoryGraph) AddVertex(id, label string, properties map[string]interface{}) (structure.Vertex, error) {
	if id == "" {
		return nil, structure.ErrInvalidElementID
	}
	if label == "" {
		return nil, structure.ErrInvalidLabel
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.vertices[id]; exists {
		return nil, fmt.Errorf("%w: %q", structure.ErrDuplicateVertex, id)
	}
	props := make(map[string]interface{}, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	v := &memVertex{graph: g, id: id, label: label, properties: props}
	g.vertices[id] = v
	return v, nil
}

// AddEdge connects two existing vertices.
func (g *InMemoryGraph) AddEdge(id, label, outV, inV string) (structure.Edge, error) {
	if id == "" {
		return nil, structure.ErrInvalidElementID
	}
	if label == "" {
		return nil, structure.ErrInvalidLabel
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out, ok := g.vertices[outV]
	if !ok {
		return nil, fmt.Errorf("%w: out vertex %q", structure.ErrElementNotFound, outV)
	}
	in, ok := g.vertices[inV]
	if !ok {
		return nil, fmt.Errorf("%w: in vertex %q", structure.ErrElementNotFound, inV)
	}
	e := &memEdge{id: id, label: label, out: out, in: in}
	out.outEdges = append(out.outEdges, e)
	in.inEdges = append(in.inEdges, e)
	return e, nil
}

// Vertex resolves a vertex by id.
func (g *InMemoryGraph) Vertex(id string) (structure.Vertex, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return nil, fmt.Errorf("%w: vertex %q", structure.ErrElementNotFound, id)
	}
	return v, nil
}

// Vertices lists all vertices.
func (g *InMemoryGraph) Vertices() ([]structure.Vertex, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]structure.Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, v)
	}
	return out, nil
}

type memVertex struct {
	graph      *InMemoryGraph
	id         string
	label      string
	properties map[string]interface{}
	outEdges   []*memEdge
	inEdges    []*memEdge
}

var _ structure.Vertex = (*memVertex)(nil)

func (v *memVertex) ID() string     { return v.id }
func (v *memVertex) Label() string  { return v.label }
func (v *memVertex) HostID() string { return v.id }

func (v *memVertex) Edges(direction structure.Direction) ([]structure.Edge, error) {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()
	var out []structure.Edge
	if direction == structure.DirectionOut || direction == structure.DirectionBoth {
		for _, e := range v.outEdges {
			out = append(out, e)
		}
	}
	if direction == structure.DirectionIn || direction == structure.DirectionBoth {
		for _, e := range v.inEdges {
			out = append(out, e)
		}
	}
	return out, nil
}

func (v *memVertex) Property(key string) (interface{}, error) {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()
	val, ok := v.properties[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", structure.ErrPropertyNotFound, key)
	}
	return val, nil
}

func (v *memVertex) PropertyKeys() []string {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()
	keys := make([]string, 0, len(v.properties))
	for k := range v.properties {
		keys = append(keys, k)
	}
	return keys
}

type memEdge struct {
	id    string
	label string
	out   *memVertex
	in    *memVertex
}

var _ structure.Edge = (*memEdge)(nil)

func (e *memEdge) ID() string                  { return e.id }
func (e *memEdge) Label() string               { return e.label }
func (e *memEdge) OutVertex() structure.Vertex { return e.out }
func (e *memEdge) InVertex() structure.Vertex  { return e.in }

func (e *memEdge) Property(key string) (interface{}, error) {
	return nil, fmt.Errorf("%w: %q", structure.ErrPropertyNotFound, key)
}
