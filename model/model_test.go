package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Model = (*MockModel)(nil)

func TestMockModel_Generate(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("ping", "pong")

	resp, err := m.Generate(context.Background(), Request{Turns: []Turn{
		{Role: RoleUser, Text: "ping"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)

	resp, err = m.Generate(context.Background(), Request{Turns: []Turn{
		{Role: RoleUser, Text: "hello"},
		{Role: RoleAssistant, Text: "ignored"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: hello", resp.Text)
	assert.Len(t, m.Requests(), 2)
	assert.Equal(t, Info{Name: "mock-1", Provider: "mock"}, m.Info())
}

func TestMockModel_Errors(t *testing.T) {
	m := NewMockModel("mock-1", "mock")

	_, err := m.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoTurns)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Generate(ctx, Request{Turns: []Turn{{Role: RoleUser, Text: "x"}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Requests())
}

func TestLastUserText(t *testing.T) {
	assert.Equal(t, "", LastUserText(Request{}))
	assert.Equal(t, "b", LastUserText(Request{Turns: []Turn{
		{Role: RoleUser, Text: "a"},
		{Role: RoleUser, Text: "b"},
		{Role: RoleAssistant, Text: "c"},
	}}))
}
