package atomic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModule struct{ name string }

func TestRegistry_Supports(t *testing.T) {
	r := New()
	assert.False(t, r.HasSupport("sessions"))

	r.AddSupport("sessions")
	r.AddSupport("sessions")
	r.AddSupport("chat")

	assert.True(t, r.HasSupport("sessions"))
	assert.Equal(t, []string{"sessions", "chat"}, r.Supports())

	s := r.Supports()
	s[0] = "mutated"
	assert.True(t, r.HasSupport("sessions"))
}

func TestRegistry_RegisterModuleFirstWins(t *testing.T) {
	r := New()
	first := &fakeModule{name: "first"}
	second := &fakeModule{name: "second"}

	require.True(t, r.RegisterModule("SessionManager", first))
	assert.False(t, r.RegisterModule("SessionManager", second))

	m, ok := r.GetModule("SessionManager")
	require.True(t, ok)
	assert.Same(t, first, m)

	_, ok = r.GetModule("Missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"SessionManager"}, r.ModuleNames())
}

func TestModule_TypedLookup(t *testing.T) {
	r := New()
	r.RegisterModule("fake", &fakeModule{name: "x"})

	m, ok := Module[*fakeModule](r, "fake")
	require.True(t, ok)
	assert.Equal(t, "x", m.name)

	_, ok = Module[string](r, "fake")
	assert.False(t, ok, "wrong type")

	_, ok = Module[*fakeModule](r, "other")
	assert.False(t, ok)

	_, ok = Module[*fakeModule](nil, "fake")
	assert.False(t, ok)
}
