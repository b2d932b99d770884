package storage

import (
	"context"
	"sync"

	"github.com/yndnr/wirehttp-go/internal/core/domain"
)

// MemoryStore implements service.UserRepository with an in-memory map.
// Records do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*domain.User)}
}

// Get retrieves a user by username.
func (s *MemoryStore) Get(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// Create stores a new user.
func (s *MemoryStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	cp := *user
	s.users[user.Username] = &cp
	return nil
}

// Delete removes a user by username.
func (s *MemoryStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, username)
	return nil
}

// List retrieves all users.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

// Close is a no-op; it exists so both stores satisfy io.Closer.
func (s *MemoryStore) Close() error {
	return nil
}
