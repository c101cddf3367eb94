package core

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Message is the envelope passed between nodes. Sessions lists the ids of the
// sessions the message belongs to; a nil slice means the message is unbound.
// A message may be bound to several sessions at once.
type Message struct {
	ID       string            `json:"id"`
	Payload  any               `json:"payload,omitempty"`
	Sessions []string          `json:"sessions,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Created  time.Time         `json:"created"`

	// set when BindMessage allocated Sessions on an unbound message
	sessionsAllocated bool
}

// NewMessage creates an unbound message with a generated id.
func NewMessage(payload any) *Message {
	return &Message{ID: uuid.New().String(), Payload: payload, Created: time.Now().UTC()}
}

// Text returns the payload when it is a string, otherwise "".
func (m *Message) Text() string {
	if s, ok := m.Payload.(string); ok {
		return s
	}
	return ""
}

// BoundTo reports whether the message carries sessionID.
func (m *Message) BoundTo(sessionID string) bool {
	return slices.Contains(m.Sessions, sessionID)
}
