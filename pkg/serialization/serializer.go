// Package serialization provides the byte-level pipeline used for traverser
// migration payloads and checkpoint frontiers: a pluggable codec, optional
// compression and optional authenticated encryption.
package serialization

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes a single value.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// Compression selects the compression algorithm applied after encoding.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Config holds serializer settings. EncryptKey, when set, must be a 32-byte
// AES-256 key; payloads are then sealed with AES-GCM.
type Config struct {
	Codec       Codec
	Compression Compression
	EncryptKey  []byte
}

// Serializer runs encode -> compress -> encrypt and the inverse.
type Serializer struct {
	config Config
}

// New creates a serializer with the given configuration. A nil codec
// defaults to msgpack.
func New(config Config) *Serializer {
	if config.Codec == nil {
		config.Codec = MsgPackCodec{}
	}
	return &Serializer{config: config}
}

// Default returns the serializer used for traverser migration: msgpack with
// zstd compression and no encryption.
func Default() *Serializer {
	return New(Config{Codec: MsgPackCodec{}, Compression: CompressionZstd})
}

// Serialize encodes, compresses and (optionally) encrypts a value.
func (s *Serializer) Serialize(v interface{}) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}
	if data, err = s.compress(data); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if len(s.config.EncryptKey) > 0 {
		if data, err = s.encrypt(data); err != nil {
			return nil, fmt.Errorf("encryption failed: %w", err)
		}
	}
	return data, nil
}

// Deserialize reverses Serialize into the provided value.
func (s *Serializer) Deserialize(data []byte, v interface{}) error {
	var err error
	if len(s.config.EncryptKey) > 0 {
		if data, err = s.decrypt(data); err != nil {
			return fmt.Errorf("decryption failed: %w", err)
		}
	}
	if data, err = s.decompress(data); err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}
	if err = s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("codec decoding failed: %w", err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

func (s *Serializer) encrypt(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.config.EncryptKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func (s *Serializer) decrypt(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.config.EncryptKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("invalid ciphertext size")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// JSONCodec encodes values as JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(v interface{}) ([]byte, error)    { return json.Marshal(v) }
func (JSONCodec) Decode(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (JSONCodec) Name() string                            { return "json" }

// MsgPackCodec encodes values as MessagePack, the traverser wire default.
type MsgPackCodec struct{}

func (MsgPackCodec) Encode(v interface{}) ([]byte, error)    { return msgpack.Marshal(v) }
func (MsgPackCodec) Decode(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }
func (MsgPackCodec) Name() string                            { return "msgpack" }
