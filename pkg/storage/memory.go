package storage

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps charts in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]Chart
	now    func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]Chart), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, c *Chart) error {
	prepare(c, s.now())
	s.mu.Lock()
	s.charts[c.ID] = *c
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	c, ok := s.charts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return &c, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.charts))
	for _, c := range s.charts {
		out = append(out, c.Summary())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return notFound(id)
	}
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
