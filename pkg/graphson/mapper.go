// Package graphson provides the exchange codec at the process boundary: it
// maps graph elements and arbitrary values to a structured JSON document
// form and back. Type embedding makes documents lossless; normalization
// makes them byte-deterministic for comparison and tests.
package graphson

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/whitewum/tinkerpop/internal/core/structure"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

// Mapper converts values to and from document form according to its
// configuration. Build one with Build(); a Mapper is immutable and safe for
// concurrent use.
type Mapper struct {
	embedTypes bool
	normalize  bool
	modules    []*Module
}

// Builder configures a Mapper.
type Builder struct {
	customModules []*Module
	loadCustom    bool
	normalize     bool
	embedTypes    bool
}

// Build starts a Mapper configuration.
func Build() *Builder {
	return &Builder{}
}

// AddCustomModule supplies an extension module layered over the base
// mapping.
func (b *Builder) AddCustomModule(m *Module) *Builder {
	if m != nil {
		b.customModules = append(b.customModules, m)
	}
	return b
}

// LoadCustomModules opportunistically layers every module registered in the
// global registry, in addition to modules supplied via AddCustomModule.
func (b *Builder) LoadCustomModules(load bool) *Builder {
	b.loadCustom = load
	return b
}

// Normalize forces deterministic, sorted key order in output.
func (b *Builder) Normalize(normalize bool) *Builder {
	b.normalize = normalize
	return b
}

// EmbedTypes annotates values with their originating type under the
// reserved ClassToken key so they can be losslessly reconstructed.
func (b *Builder) EmbedTypes(embed bool) *Builder {
	b.embedTypes = embed
	return b
}

// Create builds the Mapper.
func (b *Builder) Create() *Mapper {
	modules := make([]*Module, 0, len(b.customModules)+1)
	modules = append(modules, b.customModules...)
	if b.loadCustom {
		modules = append(modules, registeredModules()...)
	}
	return &Mapper{
		embedTypes: b.embedTypes,
		normalize:  b.normalize,
		modules:    modules,
	}
}

// Marshal encodes a single value into its document bytes.
func (m *Mapper) Marshal(v interface{}) ([]byte, error) {
	doc, err := m.encodeValue(v)
	if err != nil {
		return nil, err
	}
	if m.normalize {
		normalizeValue(doc)
	}
	return json.Marshal(doc)
}

// Unmarshal decodes document bytes back into a value. With type embedding
// enabled on encode, tagged values are reconstructed into their originating
// types.
func (m *Mapper) Unmarshal(data []byte) (interface{}, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return m.decodeValue(raw)
}

func (m *Mapper) serializerFor(t reflect.Type) (Serializer, bool) {
	for _, mod := range m.modules {
		if s, ok := mod.serializers[t]; ok {
			return s, true
		}
	}
	return nil, false
}

func (m *Mapper) deserializerFor(class string) (Deserializer, bool) {
	for _, mod := range m.modules {
		if d, ok := mod.deserializers[class]; ok {
			return d, true
		}
	}
	return baseDeserializer(class)
}

// encodeValue maps a value to a JSON-marshalable form: documents, slices
// and primitives.
func (m *Mapper) encodeValue(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, float32, float64, json.Number:
		return t, nil
	case int, int8, int16, int32, int64:
		return m.encodeInt(reflect.ValueOf(t).Int()), nil
	case uint, uint8, uint16, uint32, uint64:
		return m.encodeUint(reflect.ValueOf(t).Uint()), nil
	}

	// Custom modules override the base mapping.
	if s, ok := m.serializerFor(reflect.TypeOf(v)); ok {
		return s(m, v)
	}

	switch t := v.(type) {
	case *structure.DetachedVertex:
		return m.encodeDetachedVertex(t)
	case *structure.DetachedEdge:
		return m.encodeDetachedEdge(t)
	case structure.Vertex:
		return m.encodeDetachedVertex(structure.DetachVertex(t))
	case structure.Edge:
		return m.encodeDetachedEdge(structure.DetachEdge(t))
	case structure.Property:
		return m.encodeProperty(t)
	case *traverser.Path:
		return m.encodePath(t)
	}

	return m.encodeReflect(v)
}

// encodeReflect handles maps, slices and the textual fallback for types
// with no registered mapping.
func (m *Mapper) encodeReflect(v interface{}) (interface{}, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return m.encodeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			enc, err := m.encodeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	case reflect.Map:
		doc := newDocument()
		iter := rv.MapRange()
		for iter.Next() {
			// Non-string keys are coerced to their textual form.
			key, ok := iter.Key().Interface().(string)
			if !ok {
				key = fmt.Sprint(iter.Key().Interface())
			}
			enc, err := m.encodeValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			doc.set(key, enc)
		}
		return doc, nil
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	default:
		// Unknown value types are converted via their textual
		// representation.
		return fmt.Sprintf("%v", v), nil
	}
}

func (m *Mapper) encodeInt(v int64) interface{} {
	if !m.embedTypes {
		return v
	}
	doc := newDocument()
	doc.set(ClassToken, ClassInt64)
	doc.set(ValueToken, v)
	return doc
}

func (m *Mapper) encodeUint(v uint64) interface{} {
	if !m.embedTypes {
		return v
	}
	doc := newDocument()
	doc.set(ClassToken, ClassUint64)
	doc.set(ValueToken, v)
	return doc
}

func (m *Mapper) taggedDocument(class string) *document {
	doc := newDocument()
	if m.embedTypes {
		doc.set(ClassToken, class)
	}
	return doc
}

func (m *Mapper) encodeDetachedVertex(v *structure.DetachedVertex) (interface{}, error) {
	doc := m.taggedDocument(ClassVertex)
	doc.set(fieldID, v.VertexID)
	doc.set(fieldLabel, v.VertexLabel)
	if len(v.Properties) > 0 {
		props, err := m.encodeValue(v.Properties)
		if err != nil {
			return nil, err
		}
		doc.set(fieldProperties, props)
	}
	return doc, nil
}

func (m *Mapper) encodeDetachedEdge(e *structure.DetachedEdge) (interface{}, error) {
	doc := m.taggedDocument(ClassEdge)
	doc.set(fieldID, e.EdgeID)
	doc.set(fieldLabel, e.EdgeLabel)
	doc.set(fieldOutV, e.OutV)
	doc.set(fieldInV, e.InV)
	if len(e.Properties) > 0 {
		props, err := m.encodeValue(e.Properties)
		if err != nil {
			return nil, err
		}
		doc.set(fieldProperties, props)
	}
	return doc, nil
}

func (m *Mapper) encodeProperty(p structure.Property) (interface{}, error) {
	doc := m.taggedDocument(ClassProperty)
	doc.set(fieldKey, p.Key)
	value, err := m.encodeValue(p.Value)
	if err != nil {
		return nil, err
	}
	doc.set(fieldValue, value)
	return doc, nil
}

func (m *Mapper) encodePath(p *traverser.Path) (interface{}, error) {
	doc := m.taggedDocument(ClassPath)
	entries := p.Entries()
	labels := make([]interface{}, len(entries))
	objects := make([]interface{}, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
		obj, err := m.encodeValue(e.Value)
		if err != nil {
			return nil, err
		}
		objects[i] = obj
	}
	doc.set(fieldLabels, labels)
	doc.set(fieldObjects, objects)
	return doc, nil
}

// decodeValue walks raw JSON values, dispatching type-tagged objects to
// their deserializers.
func (m *Mapper) decodeValue(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		if class, ok := t[ClassToken].(string); ok {
			d, found := m.deserializerFor(class)
			if !found {
				return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
			}
			return d(m, t)
		}
		out := make(map[string]interface{}, len(t))
		for k, raw := range t {
			dec, err := m.decodeValue(raw)
			if err != nil {
				return nil, err
			}
			out[k] = dec
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, raw := range t {
			dec, err := m.decodeValue(raw)
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil
	default:
		return v, nil
	}
}
