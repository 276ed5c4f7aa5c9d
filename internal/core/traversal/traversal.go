// Package traversal provides the pipeline of steps a traverser flows
// through, the shared side-effect store and the execution engine selector,
// following Clean Architecture principles with zero external dependencies.
package traversal

import (
	"fmt"
	"strings"
)

// Traversal is an ordered pipeline of steps plus the side-effect store
// shared by every traverser of one execution. Strategies rewrite a
// traversal before it runs; executors then drive traversers through it.
type Traversal struct {
	steps       []Step
	byLabel     map[string]int
	sideEffects *SideEffects
	engine      Engine
}

// New returns an empty traversal bound to the local engine.
func New() *Traversal {
	return &Traversal{
		byLabel:     make(map[string]int),
		sideEffects: NewSideEffects(),
		engine:      EngineLocal,
	}
}

// AddStep appends a step to the pipeline. Labels must be unique, non-empty
// and outside the reserved (tilde-prefixed) namespace.
func (t *Traversal) AddStep(s Step) error {
	if s == nil {
		return ErrNilStep
	}
	label := s.Label()
	if label == "" {
		return ErrEmptyStepLabel
	}
	if strings.HasPrefix(label, "~") {
		return fmt.Errorf("%w: %q", ErrReservedStepLabel, label)
	}
	if _, exists := t.byLabel[label]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStep, label)
	}
	t.byLabel[label] = len(t.steps)
	t.steps = append(t.steps, s)
	return nil
}

// Steps returns the pipeline in order.
func (t *Traversal) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// StepByLabel resolves a step by its label.
func (t *Traversal) StepByLabel(label string) (Step, error) {
	i, ok := t.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStepNotFound, label)
	}
	return t.steps[i], nil
}

// NextLabel returns the label following the given step, or the empty string
// when the step is last in the pipeline.
func (t *Traversal) NextLabel(label string) string {
	i, ok := t.byLabel[label]
	if !ok || i+1 >= len(t.steps) {
		return ""
	}
	return t.steps[i+1].Label()
}

// FirstLabel returns the label of the first step.
func (t *Traversal) FirstLabel() (string, error) {
	if len(t.steps) == 0 {
		return "", ErrNoSteps
	}
	return t.steps[0].Label(), nil
}

// SideEffects returns the shared side-effect store.
func (t *Traversal) SideEffects() *SideEffects {
	return t.sideEffects
}

// Engine returns the engine the traversal is configured for.
func (t *Traversal) Engine() Engine {
	return t.engine
}

// SetEngine records the engine the traversal will run under. Strategies
// consult this when rewriting.
func (t *Traversal) SetEngine(e Engine) {
	t.engine = e
}

// Len returns the number of steps.
func (t *Traversal) Len() int {
	return len(t.steps)
}

// Validate ensures the traversal can be executed.
func (t *Traversal) Validate() error {
	if len(t.steps) == 0 {
		return ErrNoSteps
	}
	return nil
}
