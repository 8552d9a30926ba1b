package repositories

import "time"

// SessionRepository tracks the sessions that are currently signed in, keyed by token ID.
type SessionRepository interface {
	Save(sessionID, userID string, ttl time.Duration) error
	// GetUserID returns ErrNotFound for unknown, expired or revoked sessions.
	GetUserID(sessionID string) (string, error)
	Delete(sessionID string) error
}
