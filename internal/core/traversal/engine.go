package traversal

import "fmt"

// Engine selects how a traversal executes. The enumeration is closed:
// strategies and engine-aware steps may rely on these being the only values.
type Engine int

const (
	// EngineLocal runs the traversal sequentially in a single process.
	EngineLocal Engine = iota
	// EngineDistributed runs one traversal instance per graph vertex with
	// traversers migrating between vertices as messages.
	EngineDistributed
)

// String returns the engine name.
func (e Engine) String() string {
	switch e {
	case EngineLocal:
		return "local"
	case EngineDistributed:
		return "distributed"
	default:
		return fmt.Sprintf("engine(%d)", int(e))
	}
}

// Valid reports whether the value is a member of the closed enumeration.
func (e Engine) Valid() bool {
	return e == EngineLocal || e == EngineDistributed
}

// ParseEngine maps an engine name to its value.
func ParseEngine(name string) (Engine, error) {
	switch name {
	case "local":
		return EngineLocal, nil
	case "distributed":
		return EngineDistributed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
