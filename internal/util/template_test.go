package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", out)

	out, err = RenderTemplate("node {{.node_id}} turn {{.turn}} {{upper .name}}", map[string]any{
		"node_id": "A", "turn": 3, "name": "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, "node A turn 3 BOB", out)

	out, err = RenderTemplate(`{{default "anon" .user}}`, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "anon", out)

	_, err = RenderTemplate("{{.broken", nil)
	assert.Error(t, err)
}
