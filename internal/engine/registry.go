// Package engine resolves configured engine names to browser factories,
// so workflows stay independent of which automation binding drives them.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"AspectScanner/internal/ports"
)

// Options carries the settings a factory may need to build its engine.
type Options struct {
	Headless bool
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Factory builds a ready browser session.
type Factory func(opts Options) (ports.Browser, error)

// Registry keeps a mapping from engine names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces an engine factory.
func (r *Registry) Register(name string, factory Factory) {
	if r.factories == nil {
		r.factories = map[string]Factory{}
	}
	r.factories[name] = factory
}

// Open resolves an engine by name and builds a session from it.
func (r *Registry) Open(name string, opts Options) (ports.Browser, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("engine %s is not registered", name)
	}
	browser, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("open engine %s: %w", name, err)
	}
	return browser, nil
}
