package graphrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitewum/tinkerpop/internal/core/structure"
)

func TestInMemoryGraph_AddVertex(t *testing.T) {
	g := NewInMemoryGraph("g")

	v, err := g.AddVertex("v1", "person", map[string]interface{}{"name": "marko"})
	require.NoError(t, err)
	assert.Equal(t, "v1", v.ID())
	assert.Equal(t, "person", v.Label())

	name, err := v.Property("name")
	require.NoError(t, err)
	assert.Equal(t, "marko", name)

	_, err = v.Property("missing")
	assert.ErrorIs(t, err, structure.ErrPropertyNotFound)
}

func TestInMemoryGraph_AddVertex_Errors(t *testing.T) {
	g := NewInMemoryGraph("g")
	_, err := g.AddVertex("", "person", nil)
	assert.ErrorIs(t, err, structure.ErrInvalidElementID)

	_, err = g.AddVertex("v1", "", nil)
	assert.ErrorIs(t, err, structure.ErrInvalidLabel)

	_, err = g.AddVertex("v1", "person", nil)
	require.NoError(t, err)
	_, err = g.AddVertex("v1", "person", nil)
	assert.ErrorIs(t, err, structure.ErrDuplicateVertex)
}

func TestInMemoryGraph_AddEdge(t *testing.T) {
	g := NewInMemoryGraph("g")
	_, err := g.AddVertex("v1", "person", nil)
	require.NoError(t, err)
	_, err = g.AddVertex("v2", "person", nil)
	require.NoError(t, err)

	e, err := g.AddEdge("e1", "knows", "v1", "v2")
	require.NoError(t, err)
	assert.Equal(t, "v1", e.OutVertex().ID())
	assert.Equal(t, "v2", e.InVertex().ID())

	_, err = g.AddEdge("e2", "knows", "v1", "missing")
	assert.ErrorIs(t, err, structure.ErrElementNotFound)
}

func TestInMemoryGraph_EdgeDirections(t *testing.T) {
	g := NewInMemoryGraph("g")
	_, err := g.AddVertex("v1", "person", nil)
	require.NoError(t, err)
	_, err = g.AddVertex("v2", "person", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("e1", "knows", "v1", "v2")
	require.NoError(t, err)

	v1, err := g.Vertex("v1")
	require.NoError(t, err)
	v2, err := g.Vertex("v2")
	require.NoError(t, err)

	out, err := v1.Edges(structure.DirectionOut)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	in, err := v1.Edges(structure.DirectionIn)
	require.NoError(t, err)
	assert.Empty(t, in)

	both, err := v2.Edges(structure.DirectionBoth)
	require.NoError(t, err)
	assert.Len(t, both, 1)
}

func TestInMemoryGraph_Vertex(t *testing.T) {
	g := NewInMemoryGraph("g")
	_, err := g.Vertex("missing")
	assert.ErrorIs(t, err, structure.ErrElementNotFound)

	_, err = g.AddVertex("v1", "person", nil)
	require.NoError(t, err)

	v, err := g.Vertex("v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", v.ID())

	all, err := g.Vertices()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
