package session

import (
	"context"

	"cooking-assistant-be/internal/repository/contract"
	"cooking-assistant-be/pkg/store"
)

// Manager handles session operations
type Manager struct {
	sessionRepo contract.SessionRepository
}

// NewManager creates a new session manager
func NewManager(sessionRepo contract.SessionRepository) *Manager {
	return &Manager{sessionRepo: sessionRepo}
}

// LoadOrCreate retrieves a session or starts an empty one. A new session
// is not stored until Save.
func (m *Manager) LoadOrCreate(ctx context.Context, key string) (*store.Session, error) {
	session, found, err := m.sessionRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return store.NewSession(key), nil
	}
	session.EnsureDefaults()
	return session, nil
}

// Save persists session state
func (m *Manager) Save(ctx context.Context, session *store.Session) error {
	return m.sessionRepo.Save(ctx, session)
}

// Flush destroys the stored session and returns a fresh one under the same
// key.
func (m *Manager) Flush(ctx context.Context, key string) (*store.Session, error) {
	if err := m.sessionRepo.Delete(ctx, key); err != nil {
		return nil, err
	}
	return store.NewSession(key), nil
}
