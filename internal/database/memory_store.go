package database

import (
	"context"
	"sync"

	"github.com/user-registration/app/internal/models"
)

// MemoryStore keeps the collection in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	users []models.User
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Ensure(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]models.User, len(users))
	copy(s.users, users)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
