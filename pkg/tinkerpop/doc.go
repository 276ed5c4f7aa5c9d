// Package tinkerpop provides a minimal public façade for building and
// executing traversals without importing internal packages. It re-exports
// the core traversal types for convenience and exposes a Runtime that
// applies strategies, selects the execution engine and runs traversals.
package tinkerpop
