package session

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/flowatomic/atomic"
	"github.com/hupe1980/flowatomic/core"
	"github.com/hupe1980/flowatomic/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func(o *Options) {
	return func(o *Options) { o.Clock = func() time.Time { return ts } }
}

func counterOf(t *testing.T, id string) int {
	t.Helper()
	parts := strings.Split(id, "-")
	n, err := strconv.Atoi(parts[len(parts)-1])
	require.NoError(t, err)
	return n
}

func TestManager_IDScenario(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	pattern := regexp.MustCompile(`^A-\d+-(\d+)$`)

	first := m.CreateSession()
	second := m.CreateSession()

	require.Regexp(t, pattern, first.ID())
	require.Regexp(t, pattern, second.ID())
	assert.True(t, strings.HasSuffix(first.ID(), "-1"))
	assert.True(t, strings.HasSuffix(second.ID(), "-2"))
	assert.Greater(t, counterOf(t, second.ID()), counterOf(t, first.ID()))

	require.NoError(t, m.CloseSession(first.ID()))

	_, ok := m.GetSession(first.ID())
	assert.False(t, ok)
	got, ok := m.GetSession(second.ID())
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestManager_IDsUniqueWithinSameMillisecond(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	m := NewManager(core.NewNode("A"), fixedClock(ts))

	seen := map[string]bool{}
	for i := 1; i <= 50; i++ {
		s := m.CreateSession()
		assert.Equal(t, fmt.Sprintf("A-1700000000000-%d", i), s.ID())
		assert.False(t, seen[s.ID()])
		seen[s.ID()] = true
	}
}

func TestManager_CounterNeverReused(t *testing.T) {
	m := NewManager(core.NewNode("A"), fixedClock(time.UnixMilli(5)))
	s1 := m.CreateSession()
	require.NoError(t, m.CloseSession(s1.ID()))

	s2 := m.CreateSession()
	assert.Equal(t, "A-5-2", s2.ID())
}

func TestManager_CreateThenGetReturnsSameInstance(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	s := m.CreateSession()

	got, ok := m.GetSession(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())
}

func TestManager_DirectCloseReapsSession(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	s := m.CreateSession()

	s.Close()

	_, ok := m.GetSession(s.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestManager_ReapRunsBeforeUserListeners(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	s := m.CreateSession()

	var stillIndexed bool
	s.OnClose(func(cs *core.Session) {
		_, stillIndexed = m.GetSession(cs.ID())
	})
	s.Close()

	assert.False(t, stillIndexed)
}

func TestManager_UnknownIDs(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	live := m.CreateSession()

	for name, op := range map[string]func(string) error{
		"close":  m.CloseSession,
		"resume": m.ResumeSession,
	} {
		t.Run(name, func(t *testing.T) {
			err := op("unknown-id")
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrSessionNotFound))
			assert.Contains(t, err.Error(), "unknown-id")

			var nf *core.SessionNotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, "unknown-id", nf.SessionID)

			assert.Equal(t, 1, m.Len())
			assert.False(t, live.IsClosed())
			assert.Equal(t, 0, live.ResumeCount())
		})
	}
}

func TestManager_CloseTwiceReportsNotFound(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	s := m.CreateSession()
	closes := 0
	s.OnClose(func(*core.Session) { closes++ })

	require.NoError(t, m.CloseSession(s.ID()))
	err := m.CloseSession(s.ID())

	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.Equal(t, 1, closes)
}

func TestManager_ResumeSession(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	s := m.CreateSession()
	notified := 0
	s.OnResume(func(*core.Session) { notified++ })

	require.NoError(t, m.ResumeSession(s.ID()))
	require.NoError(t, m.ResumeSession(s.ID()))

	assert.Equal(t, 2, s.ResumeCount())
	assert.Equal(t, 2, notified)
}

func TestManager_BindsOntoNode(t *testing.T) {
	n := core.NewNode("A")
	m := NewManager(n)
	s := m.CreateSession()

	require.NoError(t, n.Next(s.ID()))
	assert.Equal(t, 1, s.ResumeCount())

	got, ok := n.GetSession(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	require.NoError(t, n.Close(s.ID()))
	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, n.Next(s.ID()), core.ErrSessionNotFound)
}

func TestManager_RegistersIntoAtomicAndIndex(t *testing.T) {
	n := core.NewNode("A")
	r := atomic.New()
	n.SetAtomic(r)
	idx := registry.New()

	m := NewManager(n, func(o *Options) { o.Index = idx })

	mod, ok := atomic.Module[*Manager](r, ModuleName)
	require.True(t, ok)
	assert.Same(t, m, mod)
	assert.Equal(t, []*core.Node{n}, idx.NodesByModule(ModuleName))

	// a second manager rebinds the node but the Atomic entry keeps the first
	m2 := NewManager(n)
	mod, _ = atomic.Module[*Manager](r, ModuleName)
	assert.Same(t, m, mod)
	assert.Same(t, m2, n.Sessions())
}

func TestManager_SessionsAndCloseAll(t *testing.T) {
	m := NewManager(core.NewNode("A"))
	a := m.CreateSession()
	b := m.CreateSession()
	c := m.CreateSession()
	b.Close()

	assert.Equal(t, []*core.Session{a, c}, m.Sessions())

	assert.Equal(t, 2, m.CloseAll())
	assert.Equal(t, 0, m.Len())
	assert.True(t, a.IsClosed())
	assert.True(t, c.IsClosed())
	assert.Equal(t, 0, m.CloseAll())
}
