package serialization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string   `json:"name" msgpack:"name"`
	Count int64    `json:"count" msgpack:"count"`
	Tags  []string `json:"tags" msgpack:"tags"`
}

func roundTrip(t *testing.T, s *Serializer) {
	t.Helper()
	in := payload{Name: "traverser", Count: 42, Tags: []string{"a", "b"}}

	data, err := s.Serialize(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, s.Deserialize(data, &out))
	assert.Equal(t, in, out)
}

func TestSerializer_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "msgpack plain", config: Config{Codec: MsgPackCodec{}}},
		{name: "json plain", config: Config{Codec: JSONCodec{}}},
		{name: "msgpack gzip", config: Config{Codec: MsgPackCodec{}, Compression: CompressionGzip}},
		{name: "msgpack zstd", config: Config{Codec: MsgPackCodec{}, Compression: CompressionZstd}},
		{name: "json zstd encrypted", config: Config{
			Codec:       JSONCodec{},
			Compression: CompressionZstd,
			EncryptKey:  []byte("0123456789abcdef0123456789abcdef"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTrip(t, New(tt.config))
		})
	}
}

func TestSerializer_Default(t *testing.T) {
	roundTrip(t, Default())
}

func TestSerializer_EncryptionProtectsPayload(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	s := New(Config{Codec: JSONCodec{}, EncryptKey: key})

	data, err := s.Serialize(payload{Name: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	// A serializer with a different key cannot open the payload.
	other := New(Config{Codec: JSONCodec{}, EncryptKey: []byte("ffffffffffffffffffffffffffffffff")})
	var out payload
	assert.Error(t, other.Deserialize(data, &out))
}

func TestSerializer_BadKeySize(t *testing.T) {
	s := New(Config{Codec: JSONCodec{}, EncryptKey: []byte("short")})
	_, err := s.Serialize(payload{})
	assert.Error(t, err)
}

func TestSerializer_TamperedCiphertext(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	s := New(Config{Codec: JSONCodec{}, EncryptKey: key})

	data, err := s.Serialize(payload{Name: "x"})
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff

	var out payload
	assert.Error(t, s.Deserialize(data, &out))
}

func TestCodec_Names(t *testing.T) {
	assert.Equal(t, "json", JSONCodec{}.Name())
	assert.Equal(t, "msgpack", MsgPackCodec{}.Name())
}
