package repositories

import (
	"fmt"
	"sync"
	"time"
)

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// MockSessionRepository is an in-memory implementation of SessionRepository.
type MockSessionRepository struct {
	sessions map[string]sessionEntry
	mu       sync.RWMutex
	now      func() time.Time
}

// NewMockSessionRepository creates a new instance of MockSessionRepository.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// Save records a session until ttl elapses.
func (r *MockSessionRepository) Save(sessionID, userID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = sessionEntry{userID: userID, expiresAt: r.now().Add(ttl)}
	return nil
}

// GetUserID returns the user of a live session.
func (r *MockSessionRepository) GetUserID(sessionID string) (string, error) {
	r.mu.RLock()
	entry, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("session %s %w", sessionID, ErrNotFound)
	}
	if !r.now().Before(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, sessionID)
		r.mu.Unlock()
		return "", fmt.Errorf("session %s expired: %w", sessionID, ErrNotFound)
	}
	return entry.userID, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (r *MockSessionRepository) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
