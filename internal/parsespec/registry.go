package parsespec

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rickgao/futures-data/internal/model"
)

// Factory produces a fresh ParseSpec. It depends on the source kind only,
// never on the surrounding request.
type Factory func() model.ParseSpec

// Registry binds source kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[model.SourceKind]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[model.SourceKind]Factory)}
}

// NewDefaultRegistry returns a registry bound to the built-in layouts.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for kind, f := range builtins() {
		r.factories[kind] = f
	}
	return r
}

// builtins is the explicit strategy table.
func builtins() map[model.SourceKind]Factory {
	return map[model.SourceKind]Factory{
		model.SourceQuik:  Quik,
		model.SourceDaily: Daily,
	}
}

// Register binds kind to f, replacing any previous binding. Only declared
// source kinds can be bound, since no DataRequest carries any other.
func (r *Registry) Register(kind model.SourceKind, f Factory) error {
	if !kind.Valid() {
		return &model.InvalidEnumError{Enum: "source_kind", Value: string(kind)}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
	return nil
}

// Resolve runs the factory bound to kind and validates its output.
func (r *Registry) Resolve(kind model.SourceKind) (model.ParseSpec, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok || f == nil {
		return model.ParseSpec{}, &model.UnregisteredSourceError{Kind: kind, Component: "parse spec registry"}
	}

	spec := f()
	if err := spec.Validate(); err != nil {
		return model.ParseSpec{}, fmt.Errorf("parse spec for %s: %w", kind, err)
	}
	return spec, nil
}

// Kinds returns the bound source kinds, sorted.
func (r *Registry) Kinds() []model.SourceKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}
