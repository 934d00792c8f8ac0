package storage

import (
	"context"
	"sync"

	"osint-desk/internal/model"
)

// MemoryStore is an in-process Repository.
type MemoryStore struct {
	mu     sync.Mutex
	events []model.Event
	writes int
}

func NewMemoryStore(events ...model.Event) *MemoryStore {
	return &MemoryStore{events: append([]model.Event(nil), events...)}
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Event(nil), s.events...), nil
}

func (s *MemoryStore) ReplaceAll(ctx context.Context, events []model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]model.Event(nil), events...)
	s.writes++
	return nil
}

// Writes counts ReplaceAll calls.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
