package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds named backend factories and memoizes the instances they
// produce. A model backend is created once and reused for the process
// lifetime; asking for the same name again returns the first instance.
type Registry[T Provider] struct {
	mu        sync.Mutex
	factories map[string]Factory[T]
	instances map[string]T
}

// NewRegistry creates an empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		instances: make(map[string]T),
	}
}

// RegisterFactory registers a named factory. Registering a name twice
// replaces the earlier factory.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create returns the backend for name, building it on first use. The config
// map is only consulted on that first build.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inst, ok := r.instances[name]; ok {
		return inst, nil
	}

	factory, ok := r.factories[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown backend %q, registered: %s",
			name, strings.Join(r.names(), ", "))
	}

	inst, err := factory(cfg)
	if err != nil {
		var zero T
		return zero, err
	}
	r.instances[name] = inst
	return inst, nil
}

// Get returns the already-built backend for name, if any.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Names returns the sorted names of all registered factories.
func (r *Registry[T]) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names()
}

func (r *Registry[T]) names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
