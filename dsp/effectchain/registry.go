package effectchain

import (
	"errors"
	"fmt"
)

// Factory builds the Runtime for one stage.
type Factory func(ctx Context) (Runtime, error)

// Registry maps stages to their factories.
type Registry struct {
	factories [NumStages]Factory
}

var (
	errDuplicateStage = errors.New("duplicate stage")
	errUnknownStage   = errors.New("unknown stage")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a factory for the given stage.
func (r *Registry) Register(stage Stage, factory Factory) error {
	if stage < 0 || stage >= NumStages {
		return fmt.Errorf("%w: %d", errUnknownStage, stage)
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if r.factories[stage] != nil {
		return fmt.Errorf("%w: %s", errDuplicateStage, stage)
	}

	r.factories[stage] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(stage Stage, factory Factory) {
	err := r.Register(stage, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Replace installs factory for stage, replacing any previous one.
func (r *Registry) Replace(stage Stage, factory Factory) error {
	if stage < 0 || stage >= NumStages {
		return fmt.Errorf("%w: %d", errUnknownStage, stage)
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	r.factories[stage] = factory

	return nil
}

// Lookup returns the factory for the given stage, or nil.
func (r *Registry) Lookup(stage Stage) Factory {
	if stage < 0 || stage >= NumStages {
		return nil
	}

	return r.factories[stage]
}
