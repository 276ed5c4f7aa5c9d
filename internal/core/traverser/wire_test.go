package traverser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/whitewum/tinkerpop/internal/core/structure"
)

func TestToWire_RequiresDetached(t *testing.T) {
	tr := New(5, "s", nil)
	_, err := ToWire(tr)
	assert.ErrorIs(t, err, ErrNotDetached)
}

func TestWire_RoundTrip(t *testing.T) {
	host := &fakeVertex{id: "v1", label: "person", props: map[string]interface{}{"name": "marko"}}
	tr := New(host, "step-2", nil)
	tr.SetSack("sack")
	tr.IncrLoops()
	require.NoError(t, tr.SetBulk(3))
	child := tr.Split("a", host).(*SimpleTraverser)

	wire, err := ToWire(child.Detach())
	require.NoError(t, err)

	restored := FromWire(wire)
	assert.True(t, restored.Detached())
	assert.Equal(t, "step-2", restored.Future())
	assert.Equal(t, uint16(1), restored.Loops())
	assert.Equal(t, uint64(3), restored.Bulk())
	assert.Equal(t, "sack", restored.Sack())

	dv, ok := restored.Get().(*structure.DetachedVertex)
	require.True(t, ok)
	assert.Equal(t, "v1", dv.VertexID)
	assert.Equal(t, "person", dv.VertexLabel)

	got, err := restored.Path().Get("a")
	require.NoError(t, err)
	_, ok = got.(*structure.DetachedVertex)
	assert.True(t, ok)
}

func TestWire_MsgPackRoundTrip_KeepsElementTypes(t *testing.T) {
	edge := &structure.DetachedEdge{EdgeID: "e1", EdgeLabel: "knows", OutV: "v1", InV: "v2"}
	tr := &SimpleTraverser{value: edge, path: NewPath(), bulk: 1, future: "s", detached: true}

	wire, err := ToWire(tr)
	require.NoError(t, err)

	data, err := msgpack.Marshal(wire)
	require.NoError(t, err)

	var decoded Wire
	require.NoError(t, msgpack.Unmarshal(data, &decoded))

	restored := FromWire(&decoded)
	de, ok := restored.Get().(*structure.DetachedEdge)
	require.True(t, ok)
	assert.Equal(t, "e1", de.EdgeID)
	assert.Equal(t, "v1", de.OutV)
}

func TestWire_RawValues(t *testing.T) {
	tr := New("plain", "s", nil)
	wire, err := ToWire(tr.Detach())
	require.NoError(t, err)

	assert.Nil(t, wire.Value.Vertex)
	assert.Nil(t, wire.Value.Edge)
	assert.Equal(t, "plain", FromWire(wire).Get())
}
