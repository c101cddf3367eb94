package atomic

import (
	"slices"
	"sync"

	"github.com/hupe1980/flowatomic/core"
)

// Registry holds a node's capability flags and named modules. It is safe for
// concurrent access.
type Registry struct {
	mu       sync.RWMutex
	supports []string
	modules  map[string]any
	order    []string
}

var _ core.ModuleRegistry = (*Registry)(nil)

// New returns an empty registry.
func New() *Registry {
	return &Registry{modules: make(map[string]any)}
}

// HasSupport reports whether support was added.
func (r *Registry) HasSupport(support string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.supports, support)
}

// AddSupport records a capability flag. Duplicates are ignored.
func (r *Registry) AddSupport(support string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.supports, support) {
		r.supports = append(r.supports, support)
	}
}

// Supports returns the capability flags in insertion order.
func (r *Registry) Supports() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.supports)
}

// GetModule returns the module registered under name.
func (r *Registry) GetModule(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// RegisterModule stores module under name unless the name is taken. It
// reports whether the module was stored.
func (r *Registry) RegisterModule(name string, module any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[name]; exists {
		return false
	}
	r.modules[name] = module
	r.order = append(r.order, name)
	return true
}

// ModuleNames returns registered module names in registration order.
func (r *Registry) ModuleNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Module looks up name in r and asserts it to T. It reports false when the
// module is missing or has a different type.
func Module[T any](r core.ModuleRegistry, name string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	m, ok := r.GetModule(name)
	if !ok {
		return zero, false
	}
	t, ok := m.(T)
	return t, ok
}
