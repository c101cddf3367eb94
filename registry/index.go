package registry

import (
	"slices"
	"sync"

	"github.com/hupe1980/flowatomic/core"
)

// Index maps module names to the ordered list of nodes that registered on
// them. Duplicate registrations are kept. It is safe for concurrent access.
type Index struct {
	mu            sync.RWMutex
	nodesByModule map[string][]*core.Node
	modules       []string // first-registration order
}

var _ core.NodeIndex = (*Index)(nil)

// New returns an empty index.
func New() *Index {
	return &Index{nodesByModule: make(map[string][]*core.Node)}
}

// RegisterNodeOnModule appends node to the list for module.
func (x *Index) RegisterNodeOnModule(node *core.Node, module string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.nodesByModule[module]; !ok {
		x.modules = append(x.modules, module)
	}
	x.nodesByModule[module] = append(x.nodesByModule[module], node)
}

// NodesByModule returns a copy of the nodes registered on module in
// registration order, or an empty slice.
func (x *Index) NodesByModule(module string) []*core.Node {
	x.mu.RLock()
	defer x.mu.RUnlock()
	nodes := x.nodesByModule[module]
	out := make([]*core.Node, len(nodes))
	copy(out, nodes)
	return out
}

// ReleaseNode scans modules in registration order and removes the first
// occurrence of node from the first list that contains it. Other modules are
// left untouched.
func (x *Index) ReleaseNode(node *core.Node) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, module := range x.modules {
		nodes := x.nodesByModule[module]
		if i := slices.Index(nodes, node); i != -1 {
			x.nodesByModule[module] = slices.Delete(nodes, i, i+1)
			return
		}
	}
}

// ReleaseNodeAll removes every occurrence of node from every module and
// returns how many entries were removed.
func (x *Index) ReleaseNodeAll(node *core.Node) int {
	x.mu.Lock()
	defer x.mu.Unlock()
	removed := 0
	for _, module := range x.modules {
		nodes := x.nodesByModule[module]
		kept := make([]*core.Node, 0, len(nodes))
		for _, n := range nodes {
			if n == node {
				removed++
				continue
			}
			kept = append(kept, n)
		}
		x.nodesByModule[module] = kept
	}
	return removed
}

// Modules returns the known module names in first-registration order. A
// module stays known after its last node is released.
func (x *Index) Modules() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.modules)
}

// ModulesOf returns the modules node is currently registered on.
func (x *Index) ModulesOf(node *core.Node) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	var out []string
	for _, module := range x.modules {
		if slices.Contains(x.nodesByModule[module], node) {
			out = append(out, module)
		}
	}
	return out
}
