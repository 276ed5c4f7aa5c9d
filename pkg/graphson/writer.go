package graphson

import (
	"encoding/json"
	"io"
)

// Writer streams multiple values onto one open output. The target is never
// closed between values, so a single channel can carry a whole result set
// (e.g. every vertex of a traversal) as newline-delimited documents.
type Writer struct {
	mapper *Mapper
	enc    *json.Encoder
}

// NewWriter creates a streaming writer over w.
func (m *Mapper) NewWriter(w io.Writer) *Writer {
	return &Writer{mapper: m, enc: json.NewEncoder(w)}
}

// Write encodes one value onto the stream.
func (w *Writer) Write(v interface{}) error {
	doc, err := w.mapper.encodeValue(v)
	if err != nil {
		return err
	}
	if w.mapper.normalize {
		normalizeValue(doc)
	}
	return w.enc.Encode(doc)
}

// Decoder reads a stream produced by Writer.
type Decoder struct {
	mapper *Mapper
	dec    *json.Decoder
}

// NewDecoder creates a streaming decoder over r.
func (m *Mapper) NewDecoder(r io.Reader) *Decoder {
	return &Decoder{mapper: m, dec: json.NewDecoder(r)}
}

// Decode reads the next value from the stream. Returns io.EOF when the
// stream is exhausted.
func (d *Decoder) Decode() (interface{}, error) {
	var raw interface{}
	if err := d.dec.Decode(&raw); err != nil {
		return nil, err
	}
	return d.mapper.decodeValue(raw)
}
