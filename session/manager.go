package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/flowatomic/core"
	"github.com/hupe1980/flowatomic/logging"
)

// ModuleName is the name the manager registers under in a node's Atomic
// registry and in the node index.
const ModuleName = "SessionManager"

// Options configures a Manager.
type Options struct {
	// Clock supplies the timestamp embedded in session ids. Defaults to time.Now.
	Clock func() time.Time

	// Index, when set, records the node under ModuleName.
	Index core.NodeIndex

	// Logger defaults to NoOp logger if nil.
	Logger logging.Logger
}

// Manager owns the live sessions of one node.
//
// The close listener that reaps a session from the manager is subscribed
// before the session is handed out, so it always runs first.
type Manager struct {
	node   *core.Node
	opts   Options
	logger logging.Logger

	mu       sync.RWMutex
	counter  uint64
	sessions map[string]*entry
}

type entry struct {
	session *core.Session
	seq     uint64
}

var _ core.SessionController = (*Manager)(nil)

// sessionEventLogger is implemented by loggers with a dedicated session
// lifecycle record.
type sessionEventLogger interface {
	LogSessionEvent(event, sessionID string, resumeCount int)
}

// NewManager creates a manager for node and binds it onto the node. When the
// node has an Atomic registry the manager registers itself under ModuleName
// (a no-op if another manager got there first); when an index is configured
// the node is recorded under ModuleName.
func NewManager(node *core.Node, optFns ...func(o *Options)) *Manager {
	opts := Options{
		Clock: time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	m := &Manager{
		node:     node,
		opts:     opts,
		logger:   scopedLogger(opts.Logger, node.ID),
		sessions: make(map[string]*entry),
	}

	node.BindSessions(m)
	if r := node.Atomic(); r != nil {
		r.RegisterModule(ModuleName, m)
	}
	if opts.Index != nil {
		opts.Index.RegisterNodeOnModule(node, ModuleName)
	}

	m.logger.Debug("Session manager bound")
	return m
}

// scopedLogger stamps a *logging.NodeLogger with the component and node; any
// other logger is returned as is.
func scopedLogger(l logging.Logger, nodeID string) logging.Logger {
	if nl, ok := l.(*logging.NodeLogger); ok && nl != nil {
		return nl.WithComponent("session_manager").WithNode(nodeID)
	}
	return logging.OrNoOp(l)
}

func (m *Manager) logEvent(event core.SessionEvent, s *core.Session) {
	if l, ok := m.logger.(sessionEventLogger); ok {
		l.LogSessionEvent(string(event), s.ID(), s.ResumeCount())
		return
	}
	m.logger.Debug("Session "+string(event), "node_id", m.node.ID, "session_id", s.ID(), "resume_count", s.ResumeCount())
}

// Node returns the node the manager is bound to.
func (m *Manager) Node() *core.Node { return m.node }

// CreateSession creates, stores and returns a new active session.
func (m *Manager) CreateSession() *core.Session {
	m.mu.Lock()
	m.counter++
	seq := m.counter
	id := fmt.Sprintf("%s-%d-%d", m.node.ID, m.opts.Clock().UnixMilli(), seq)
	s := core.NewSession(id)
	s.OnClose(m.reap)
	m.sessions[id] = &entry{session: s, seq: seq}
	m.mu.Unlock()

	m.logEvent("create", s)
	return s
}

// reap drops a closed session from the index.
func (m *Manager) reap(s *core.Session) {
	m.mu.Lock()
	if e, ok := m.sessions[s.ID()]; ok && e.session == s {
		delete(m.sessions, s.ID())
	}
	m.mu.Unlock()

	m.logEvent(core.SessionEventClose, s)
}

// GetSession returns the live session for id.
func (m *Manager) GetSession(id string) (*core.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// CloseSession closes the session for id. It returns a
// *core.SessionNotFoundError when no live session has that id.
func (m *Manager) CloseSession(id string) error {
	s, ok := m.GetSession(id)
	if !ok {
		m.logger.Debug("Close of unknown session", "session_id", id)
		return core.NewSessionNotFoundError(id)
	}
	s.Close()
	return nil
}

// ResumeSession resumes the session for id. It returns a
// *core.SessionNotFoundError when no live session has that id.
func (m *Manager) ResumeSession(id string) error {
	s, ok := m.GetSession(id)
	if !ok {
		m.logger.Debug("Resume of unknown session", "session_id", id)
		return core.NewSessionNotFoundError(id)
	}
	s.Resume()
	m.logEvent(core.SessionEventResume, s)
	return nil
}

// Sessions returns the live sessions in creation order.
func (m *Manager) Sessions() []*core.Session {
	m.mu.RLock()
	entries := make([]*entry, 0, len(m.sessions))
	for _, e := range m.sessions {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*core.Session, len(entries))
	for i, e := range entries {
		out[i] = e.session
	}
	return out
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll closes every live session in creation order and returns how many
// were closed.
func (m *Manager) CloseAll() int {
	closed := 0
	for _, s := range m.Sessions() {
		if s.Close() {
			closed++
		}
	}
	return closed
}
