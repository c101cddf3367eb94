package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound matches (via errors.Is) every *SessionNotFoundError.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionsDisabled is returned by Node session entry points when no
	// SessionController has been bound to the node.
	ErrSessionsDisabled = errors.New("session management not enabled on node")
)

// SessionNotFoundError reports that no live session exists for SessionID,
// either because it was never created or because it was closed and reaped.
// Callers should treat it as "already gone".
type SessionNotFoundError struct {
	SessionID string
}

// NewSessionNotFoundError returns a *SessionNotFoundError for id.
func NewSessionNotFoundError(id string) *SessionNotFoundError {
	return &SessionNotFoundError{SessionID: id}
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSessionNotFound.Error(), e.SessionID)
}

// Is makes errors.Is(err, ErrSessionNotFound) succeed.
func (e *SessionNotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}
