package sessions

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memoryStore implements Store in memory. Used by tests; sessions never
// expire.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]Session)}
}

func (s *memoryStore) Create(ctx context.Context, userID string, isAdmin bool) (string, error) {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = Session{Token: token, UserID: userID, IsAdmin: isAdmin}
	return token, nil
}

func (s *memoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *memoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
