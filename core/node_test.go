package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubController records calls and serves a fixed set of sessions.
type stubController struct {
	sessions map[string]*Session
	resumed  []string
	closed   []string
}

func (c *stubController) ResumeSession(id string) error {
	c.resumed = append(c.resumed, id)
	if _, ok := c.sessions[id]; !ok {
		return NewSessionNotFoundError(id)
	}
	return nil
}

func (c *stubController) CloseSession(id string) error {
	c.closed = append(c.closed, id)
	if _, ok := c.sessions[id]; !ok {
		return NewSessionNotFoundError(id)
	}
	return nil
}

func (c *stubController) GetSession(id string) (*Session, bool) {
	s, ok := c.sessions[id]
	return s, ok
}

var _ SessionController = (*stubController)(nil)

func TestNode_WithoutController(t *testing.T) {
	n := NewNode("A")

	assert.ErrorIs(t, n.Next("x"), ErrSessionsDisabled)
	assert.ErrorIs(t, n.Close("x"), ErrSessionsDisabled)
	s, ok := n.GetSession("x")
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.Nil(t, n.Atomic())
}

func TestNode_DelegatesToBoundController(t *testing.T) {
	n := NewNode("A")
	sess := NewSession("A-1-1")
	c := &stubController{sessions: map[string]*Session{sess.ID(): sess}}
	n.BindSessions(c)

	require.NoError(t, n.Next("A-1-1"))
	require.NoError(t, n.Close("A-1-1"))
	got, ok := n.GetSession("A-1-1")
	require.True(t, ok)
	assert.Same(t, sess, got)

	err := n.Next("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Equal(t, []string{"A-1-1", "missing"}, c.resumed)
	assert.Equal(t, []string{"A-1-1"}, c.closed)
}

func TestNode_RebindOverwrites(t *testing.T) {
	n := NewNode("A")
	first := &stubController{sessions: map[string]*Session{}}
	second := &stubController{sessions: map[string]*Session{}}
	n.BindSessions(first)
	n.BindSessions(second)

	_ = n.Next("x")
	assert.Empty(t, first.resumed)
	assert.Equal(t, []string{"x"}, second.resumed)
	assert.Same(t, second, n.Sessions())
}

func TestNewNodeWithGeneratedID(t *testing.T) {
	a := NewNodeWithGeneratedID()
	b := NewNodeWithGeneratedID()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.ID, a.String())
}

func TestSessionNotFoundError(t *testing.T) {
	err := error(NewSessionNotFoundError("unknown-id"))

	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.Contains(t, err.Error(), "unknown-id")

	var nf *SessionNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "unknown-id", nf.SessionID)
}

func TestMessage_Text(t *testing.T) {
	m := NewMessage("hello")
	assert.Equal(t, "hello", m.Text())
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.Created.IsZero())

	assert.Equal(t, "", NewMessage(42).Text())
}
