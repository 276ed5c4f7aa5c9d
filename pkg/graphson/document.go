package graphson

import (
	"bytes"
	"encoding/json"
	"sort"
)

// document is an insertion-ordered JSON object. Without normalization keys
// are emitted in the order they were set; normalization sorts them so the
// same logical value always yields byte-identical output.
type document struct {
	keys   []string
	values map[string]interface{}
}

func newDocument() *document {
	return &document{values: make(map[string]interface{})}
}

func (d *document) set(key string, value interface{}) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *document) get(key string) (interface{}, bool) {
	v, ok := d.values[key]
	return v, ok
}

// normalize sorts keys recursively, leaving the type-tag key first so the
// tag stays distinguishable at a glance.
func (d *document) normalize() {
	sort.Slice(d.keys, func(i, j int) bool {
		if d.keys[i] == ClassToken {
			return true
		}
		if d.keys[j] == ClassToken {
			return false
		}
		return d.keys[i] < d.keys[j]
	})
	for _, v := range d.values {
		normalizeValue(v)
	}
}

func normalizeValue(v interface{}) {
	switch t := v.(type) {
	case *document:
		t.normalize()
	case []interface{}:
		for _, e := range t {
			normalizeValue(e)
		}
	}
}

// MarshalJSON emits the object with its current key order.
func (d *document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
