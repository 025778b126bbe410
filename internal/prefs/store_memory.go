package prefs

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, workspaceID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[workspaceID][key]
	return val, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, workspaceID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.data[workspaceID]
	if !ok {
		ws = make(map[string]string)
		s.data[workspaceID] = ws
	}
	ws[key] = value
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, workspaceID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[workspaceID], key)
	return nil
}
