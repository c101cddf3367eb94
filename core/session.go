package core

import (
	"slices"
	"sync"
	"time"
)

// SessionEvent names a session lifecycle notification.
type SessionEvent string

const (
	// SessionEventResume fires on every Resume call.
	SessionEventResume SessionEvent = "resume"
	// SessionEventClose fires once, when the session transitions to closed.
	SessionEventClose SessionEvent = "close"
)

// SessionListener observes session lifecycle notifications.
type SessionListener func(s *Session)

type listener struct {
	id uint64
	fn SessionListener
}

// Session is an addressable conversational unit owned by exactly one session
// manager. It carries a resume counter, a closed flag and a small key/value
// state used by modules that keep per-conversation data.
//
// Contract:
//   - The id never changes
//   - Close transitions active -> closed once; later calls are no-ops
//   - Resume is not blocked after close; it still counts and notifies
//   - Listeners run synchronously, in subscription order, outside the lock
type Session struct {
	id      string
	created time.Time

	mu          sync.RWMutex
	closed      bool
	resumeCount int
	state       map[string]any
	listeners   map[SessionEvent][]listener
	nextID      uint64
}

// NewSession creates an active session with the given id.
func NewSession(id string) *Session {
	return &Session{
		id:        id,
		created:   time.Now(),
		state:     map[string]any{},
		listeners: map[SessionEvent][]listener{},
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Created returns the creation time.
func (s *Session) Created() time.Time { return s.created }

// IsClosed reports whether Close has been called.
func (s *Session) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// ResumeCount returns how many times Resume has been called.
func (s *Session) ResumeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resumeCount
}

// On subscribes fn to ev and returns a function removing the subscription.
func (s *Session) On(ev SessionEvent, fn SessionListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[ev] = append(s.listeners[ev], listener{id: id, fn: fn})
	return func() { s.off(ev, id) }
}

// OnResume subscribes fn to resume notifications.
func (s *Session) OnResume(fn SessionListener) func() { return s.On(SessionEventResume, fn) }

// OnClose subscribes fn to the close notification.
func (s *Session) OnClose(fn SessionListener) func() { return s.On(SessionEventClose, fn) }

func (s *Session) off(ev SessionEvent, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls := s.listeners[ev]
	for i, l := range ls {
		if l.id == id {
			// copy-on-write so an in-flight emit keeps its snapshot intact
			next := make([]listener, 0, len(ls)-1)
			next = append(next, ls[:i]...)
			s.listeners[ev] = append(next, ls[i+1:]...)
			return
		}
	}
}

// snapshotLocked returns the current listeners for ev; caller holds mu.
func (s *Session) snapshotLocked(ev SessionEvent) []listener {
	ls := s.listeners[ev]
	out := make([]listener, len(ls))
	copy(out, ls)
	return out
}

func (s *Session) emit(ls []listener) {
	for _, l := range ls {
		l.fn(s)
	}
}

// Resume increments the resume counter and notifies resume listeners.
func (s *Session) Resume() {
	s.mu.Lock()
	s.resumeCount++
	ls := s.snapshotLocked(SessionEventResume)
	s.mu.Unlock()

	s.emit(ls)
}

// Close marks the session closed and notifies close listeners. It returns
// false without notifying anyone when the session was already closed.
func (s *Session) Close() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	ls := s.snapshotLocked(SessionEventClose)
	s.mu.Unlock()

	s.emit(ls)
	return true
}

// BindMessage appends the session id to msg.Sessions and returns msg.
func (s *Session) BindMessage(msg *Message) *Message {
	if msg.Sessions == nil {
		msg.sessionsAllocated = true
	}
	msg.Sessions = append(msg.Sessions, s.id)
	return msg
}

// UnbindMessage removes every occurrence of the session id from msg.Sessions
// and returns msg. Messages not bound to the session are left untouched. An
// emptied list returns to nil only when BindMessage created it.
func (s *Session) UnbindMessage(msg *Message) *Message {
	if !slices.Contains(msg.Sessions, s.id) {
		return msg
	}
	msg.Sessions = slices.DeleteFunc(msg.Sessions, func(id string) bool { return id == s.id })
	if len(msg.Sessions) == 0 && msg.sessionsAllocated {
		msg.Sessions = nil
		msg.sessionsAllocated = false
	}
	return msg
}

// GetState returns the value and existence flag for a state key.
func (s *Session) GetState(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state[key]
	return v, ok
}

// SetState sets a key/value pair in session state.
func (s *Session) SetState(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[key] = value
}

// ApplyStateDelta merges the provided key/value pairs into state.
func (s *Session) ApplyStateDelta(delta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range delta {
		s.state[k] = v
	}
}

// StateSnapshot returns a shallow copy of the state map.
func (s *Session) StateSnapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}
