package account

import (
	"context"
	"sync"
	"time"

	"geniemetrics/internal/domain"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

// NewMemoryStore returns an empty process-local Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*domain.Session), now: time.Now}
}

func (m *MemoryStore) Create(ctx context.Context, sess *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	if _, ok := m.sessions[sess.ID]; ok {
		return domain.ErrConflict
	}
	m.sessions[sess.ID] = cloneSession(sess)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	return cloneSession(sess), nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	next := cloneSession(sess)
	if err := fn(next); err != nil {
		return nil, err
	}
	m.sessions[id] = next
	return cloneSession(next), nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) lookupLocked(id string) (*domain.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Expired(m.now()) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemoryStore) sweepLocked() {
	now := m.now()
	for id, sess := range m.sessions {
		if sess.Expired(now) {
			delete(m.sessions, id)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
