package credstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs tests and
// single-process apps that don't need durable credential storage.
type MemoryStore struct {
	mu    sync.RWMutex
	app   map[string]string
	users map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		app:   make(map[string]string),
		users: make(map[string]map[string]string),
	}
}

func (s *MemoryStore) GetAppValue(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app[key], nil
}

// SetAppValue sets an app-level value such as the admin instance URL.
func (s *MemoryStore) SetAppValue(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app[key] = value
	return nil
}

func (s *MemoryStore) GetUserValue(_ context.Context, userID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[userID][key], nil
}

func (s *MemoryStore) SetUserValue(_ context.Context, userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.users[userID]
	if !ok {
		values = make(map[string]string)
		s.users[userID] = values
	}
	values[key] = value
	return nil
}

func (s *MemoryStore) DeleteUserValue(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users[userID], key)
	return nil
}

// ListUsers returns the IDs of all users with at least one stored value.
func (s *MemoryStore) ListUsers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]string, 0, len(s.users))
	for userID := range s.users {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users, nil
}
