package graphson

import (
	"fmt"

	"github.com/whitewum/tinkerpop/internal/core/structure"
	"github.com/whitewum/tinkerpop/internal/core/traverser"
)

// baseDeserializer resolves the built-in class names. Custom modules are
// consulted before this, so extensions may override the base mapping.
func baseDeserializer(class string) (Deserializer, bool) {
	switch class {
	case ClassVertex:
		return decodeVertex, true
	case ClassEdge:
		return decodeEdge, true
	case ClassProperty:
		return decodeProperty, true
	case ClassPath:
		return decodePath, true
	case ClassInt64:
		return decodeInt64, true
	case ClassUint64:
		return decodeUint64, true
	default:
		return nil, false
	}
}

func docString(doc map[string]interface{}, field string) (string, error) {
	v, ok := doc[field].(string)
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidDocument, field)
	}
	return v, nil
}

func decodeVertex(m *Mapper, doc map[string]interface{}) (interface{}, error) {
	id, err := docString(doc, fieldID)
	if err != nil {
		return nil, err
	}
	label, err := docString(doc, fieldLabel)
	if err != nil {
		return nil, err
	}
	v := &structure.DetachedVertex{VertexID: id, VertexLabel: label}
	if rawProps, ok := doc[fieldProperties]; ok {
		props, err := m.decodeValue(rawProps)
		if err != nil {
			return nil, err
		}
		if pm, ok := props.(map[string]interface{}); ok {
			v.Properties = pm
		}
	}
	return v, nil
}

func decodeEdge(m *Mapper, doc map[string]interface{}) (interface{}, error) {
	id, err := docString(doc, fieldID)
	if err != nil {
		return nil, err
	}
	label, err := docString(doc, fieldLabel)
	if err != nil {
		return nil, err
	}
	outV, err := docString(doc, fieldOutV)
	if err != nil {
		return nil, err
	}
	inV, err := docString(doc, fieldInV)
	if err != nil {
		return nil, err
	}
	e := &structure.DetachedEdge{EdgeID: id, EdgeLabel: label, OutV: outV, InV: inV}
	if rawProps, ok := doc[fieldProperties]; ok {
		props, err := m.decodeValue(rawProps)
		if err != nil {
			return nil, err
		}
		if pm, ok := props.(map[string]interface{}); ok {
			e.Properties = pm
		}
	}
	return e, nil
}

func decodeProperty(m *Mapper, doc map[string]interface{}) (interface{}, error) {
	key, err := docString(doc, fieldKey)
	if err != nil {
		return nil, err
	}
	value, err := m.decodeValue(doc[fieldValue])
	if err != nil {
		return nil, err
	}
	return structure.Property{Key: key, Value: value}, nil
}

func decodePath(m *Mapper, doc map[string]interface{}) (interface{}, error) {
	labels, ok := doc[fieldLabels].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrInvalidDocument, fieldLabels)
	}
	objects, ok := doc[fieldObjects].([]interface{})
	if !ok || len(objects) != len(labels) {
		return nil, fmt.Errorf("%w: labels/objects mismatch", ErrInvalidDocument)
	}
	path := traverser.NewPath()
	for i := range labels {
		label, ok := labels[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string path label", ErrInvalidDocument)
		}
		obj, err := m.decodeValue(objects[i])
		if err != nil {
			return nil, err
		}
		path = path.Extend(label, obj)
	}
	return path, nil
}

func decodeInt64(_ *Mapper, doc map[string]interface{}) (interface{}, error) {
	f, ok := doc[ValueToken].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: %s value", ErrInvalidDocument, ClassInt64)
	}
	return int64(f), nil
}

func decodeUint64(_ *Mapper, doc map[string]interface{}) (interface{}, error) {
	f, ok := doc[ValueToken].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: %s value", ErrInvalidDocument, ClassUint64)
	}
	return uint64(f), nil
}
