package core

// SessionController is the capability set a node exposes for driving sessions
// purely by id. The session manager implements it and binds itself onto the
// node at construction time.
type SessionController interface {
	ResumeSession(sessionID string) error
	CloseSession(sessionID string) error
	GetSession(sessionID string) (*Session, bool)
}

// ModuleRegistry is the per-node capability/module registry ("Atomic").
//
// Contract:
//   - RegisterModule is a no-op returning false when name is already present
//   - GetModule reports whether a module with the given name exists
type ModuleRegistry interface {
	HasSupport(support string) bool
	AddSupport(support string)
	GetModule(name string) (any, bool)
	RegisterModule(name string, module any) bool
}

// NodeIndex is the process-wide index of node/module associations used for
// bulk cleanup when a node is torn down.
type NodeIndex interface {
	RegisterNodeOnModule(node *Node, module string)
	NodesByModule(module string) []*Node
	// ReleaseNode removes the first occurrence of node from the first module
	// list containing it and stops.
	ReleaseNode(node *Node)
	// ReleaseNodeAll removes every occurrence of node from every module and
	// returns the number of removed entries.
	ReleaseNodeAll(node *Node) int
}
