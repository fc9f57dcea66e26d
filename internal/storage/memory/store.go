package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/courtside/courtside/internal/storage"
)

// Store is an in-memory implementation of the storage interface. Sessions
// held in it do not survive the process; used in tests and for explicitly
// ephemeral sessions.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = data
}

func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *Store) Remove(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string][]byte)
}
