package testutil

import "github.com/hupe1980/flowatomic/core"

// MessageBuilder provides a fluent helper for constructing messages in tests.
//
//	msg := NewMessageBuilder().Text("hello").Bound("A-1-1").Build()
type MessageBuilder struct {
	id       string
	payload  any
	sessions []string
	meta     map[string]string
}

// NewMessageBuilder creates a builder for an unbound message.
func NewMessageBuilder() *MessageBuilder { return &MessageBuilder{} }

// ID overrides the generated id (chainable).
func (b *MessageBuilder) ID(id string) *MessageBuilder { b.id = id; return b }

// Text sets a string payload (chainable).
func (b *MessageBuilder) Text(t string) *MessageBuilder { b.payload = t; return b }

// Payload sets an arbitrary payload (chainable).
func (b *MessageBuilder) Payload(p any) *MessageBuilder { b.payload = p; return b }

// Bound appends session ids (chainable).
func (b *MessageBuilder) Bound(ids ...string) *MessageBuilder {
	b.sessions = append(b.sessions, ids...)
	return b
}

// Meta sets a metadata entry (chainable).
func (b *MessageBuilder) Meta(k, v string) *MessageBuilder {
	if b.meta == nil {
		b.meta = map[string]string{}
	}
	b.meta[k] = v
	return b
}

// Build returns the message.
func (b *MessageBuilder) Build() *core.Message {
	m := core.NewMessage(b.payload)
	if b.id != "" {
		m.ID = b.id
	}
	if len(b.sessions) > 0 {
		m.Sessions = append([]string(nil), b.sessions...)
	}
	m.Metadata = b.meta
	return m
}
