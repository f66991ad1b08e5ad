package auth

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID  int64
	expires time.Time
}

// MemoryStore is a process-local Store for single-instance deployments
// and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		delete(s.sessions, id)
		return 0, ErrSessionNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Set(ctx context.Context, id string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{userID: userID}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.sessions[id] = e
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
