package traversal

import (
	"fmt"
	"sync"
)

// SideEffects is the traversal-global keyed store shared by every traverser
// of one execution. Its lifetime is pinned to that execution; traversers
// hold a reference and forward reads and writes.
//
// Keys may be registered as graph-scoped: state that lives in (or is backed
// by) the graph itself. Distributed execution has no globally consistent
// store, so the engine-dependent rewrite removes all graph-scoped state
// before a traversal runs vertex-centric.
//
// The store owns its own concurrency discipline; a plain RWMutex suffices
// for the keyed get/set access pattern.
type SideEffects struct {
	mu        sync.RWMutex
	values    map[string]interface{}
	graphKeys map[string]bool
}

// NewSideEffects returns an empty store.
func NewSideEffects() *SideEffects {
	return &SideEffects{
		values:    make(map[string]interface{}),
		graphKeys: make(map[string]bool),
	}
}

// Get returns the value stored under key. A key that was never set is an
// error, so callers distinguish "never set" from "set to nil".
func (se *SideEffects) Get(key string) (interface{}, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	v, ok := se.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSideEffectNotFound, key)
	}
	return v, nil
}

// Set stores a value under key.
func (se *SideEffects) Set(key string, value interface{}) {
	se.mu.Lock()
	defer se.mu.Unlock()
	se.values[key] = value
}

// SetGraphScoped stores a value under key and marks it graph-scoped, so
// RemoveGraph clears it.
func (se *SideEffects) SetGraphScoped(key string, value interface{}) {
	se.mu.Lock()
	defer se.mu.Unlock()
	se.values[key] = value
	se.graphKeys[key] = true
}

// Keys lists the populated keys in unspecified order.
func (se *SideEffects) Keys() []string {
	se.mu.RLock()
	defer se.mu.RUnlock()
	keys := make([]string, 0, len(se.values))
	for k := range se.values {
		keys = append(keys, k)
	}
	return keys
}

// RemoveGraph clears every graph-scoped entry. Idempotent: a store with no
// graph-scoped state is left unchanged.
func (se *SideEffects) RemoveGraph() {
	se.mu.Lock()
	defer se.mu.Unlock()
	for k := range se.graphKeys {
		delete(se.values, k)
		delete(se.graphKeys, k)
	}
}

// Snapshot copies the current values, for checkpointing.
func (se *SideEffects) Snapshot() map[string]interface{} {
	se.mu.RLock()
	defer se.mu.RUnlock()
	out := make(map[string]interface{}, len(se.values))
	for k, v := range se.values {
		out[k] = v
	}
	return out
}
