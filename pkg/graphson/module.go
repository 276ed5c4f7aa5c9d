package graphson

import (
	"reflect"
	"sync"
)

// Serializer converts a value of a registered type into a document value.
type Serializer func(m *Mapper, v interface{}) (interface{}, error)

// Deserializer reconstructs a value from a type-tagged document.
type Deserializer func(m *Mapper, doc map[string]interface{}) (interface{}, error)

// Module is a named set of serializer/deserializer extensions layered on
// top of the base mapping.
type Module struct {
	name          string
	serializers   map[reflect.Type]Serializer
	deserializers map[string]Deserializer
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		name:          name,
		serializers:   make(map[reflect.Type]Serializer),
		deserializers: make(map[string]Deserializer),
	}
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// AddSerializer registers a serializer for a concrete type.
func (m *Module) AddSerializer(t reflect.Type, s Serializer) *Module {
	m.serializers[t] = s
	return m
}

// AddDeserializer registers a deserializer for a class name.
func (m *Module) AddDeserializer(class string, d Deserializer) *Module {
	m.deserializers[class] = d
	return m
}

// Package-level module registry. Modules registered here are picked up by
// mappers built with LoadCustomModules(true), the codec's auto-discovery.
var (
	registryMu sync.RWMutex
	registry   []*Module
)

// RegisterModule adds a module to the global registry.
func RegisterModule(m *Module) error {
	if m == nil {
		return ErrNilModule
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, m)
	return nil
}

func registeredModules() []*Module {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*Module, len(registry))
	copy(out, registry)
	return out
}
