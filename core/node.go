package core

import (
	"sync"

	"github.com/google/uuid"
)

// Node is the slice of a host-runtime node this library cares about: a
// stable id, an Atomic module registry and the session entry points bound by
// a session manager. Everything else about the node belongs to the host.
//
// A Node is safe for concurrent access.
type Node struct {
	ID string

	mu       sync.RWMutex
	atomic   ModuleRegistry
	sessions SessionController
}

// NewNode creates a node with the given id.
func NewNode(id string) *Node {
	return &Node{ID: id}
}

// NewNodeWithGeneratedID creates a node with a random UUID id.
func NewNodeWithGeneratedID() *Node {
	return NewNode(uuid.New().String())
}

// SetAtomic installs the node's module registry, replacing any previous one.
func (n *Node) SetAtomic(r ModuleRegistry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.atomic = r
}

// Atomic returns the installed module registry or nil.
func (n *Node) Atomic() ModuleRegistry {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.atomic
}

// BindSessions installs c as the target of Next, Close and GetSession.
// Binding again overwrites the previous controller.
func (n *Node) BindSessions(c SessionController) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sessions = c
}

// Sessions returns the bound controller or nil.
func (n *Node) Sessions() SessionController {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sessions
}

// Next resumes the session with the given id.
func (n *Node) Next(sessionID string) error {
	c := n.Sessions()
	if c == nil {
		return ErrSessionsDisabled
	}
	return c.ResumeSession(sessionID)
}

// Close closes the session with the given id.
func (n *Node) Close(sessionID string) error {
	c := n.Sessions()
	if c == nil {
		return ErrSessionsDisabled
	}
	return c.CloseSession(sessionID)
}

// GetSession looks up a live session by id.
func (n *Node) GetSession(sessionID string) (*Session, bool) {
	c := n.Sessions()
	if c == nil {
		return nil, false
	}
	return c.GetSession(sessionID)
}

// String implements fmt.Stringer.
func (n *Node) String() string { return n.ID }
