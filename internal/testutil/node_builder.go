package testutil

import (
	"github.com/hupe1980/flowatomic/atomic"
	"github.com/hupe1980/flowatomic/core"
)

// NodeBuilder helps construct nodes with fluent chaining for tests.
// Example:
//
//	n := NewNodeBuilder("A").WithAtomic().Support("sessions").Build()
type NodeBuilder struct {
	id       string
	atomic   bool
	supports []string
	modules  map[string]any
}

// NewNodeBuilder creates a builder for a node with the given id.
func NewNodeBuilder(id string) *NodeBuilder {
	return &NodeBuilder{id: id, modules: map[string]any{}}
}

// WithAtomic installs an empty Atomic registry (chainable).
func (b *NodeBuilder) WithAtomic() *NodeBuilder { b.atomic = true; return b }

// Support adds a capability flag and implies WithAtomic (chainable).
func (b *NodeBuilder) Support(s string) *NodeBuilder {
	b.atomic = true
	b.supports = append(b.supports, s)
	return b
}

// Module pre-registers a module and implies WithAtomic (chainable).
func (b *NodeBuilder) Module(name string, m any) *NodeBuilder {
	b.atomic = true
	b.modules[name] = m
	return b
}

// Build returns the configured node.
func (b *NodeBuilder) Build() *core.Node {
	n := core.NewNode(b.id)
	if !b.atomic {
		return n
	}
	r := atomic.New()
	for _, s := range b.supports {
		r.AddSupport(s)
	}
	for name, m := range b.modules {
		r.RegisterModule(name, m)
	}
	n.SetAtomic(r)
	return n
}
