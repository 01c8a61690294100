package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps charts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]*Chart
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]*Chart)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.charts[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, c *Chart) error {
	if err := validate(c); err != nil {
		return err
	}
	cp := *c
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[c.ID] = &cp
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Chart, error) {
	s.mu.RLock()
	out := make([]*Chart, 0, len(s.charts))
	for _, c := range s.charts {
		out = append(out, c.Summary())
	}
	s.mu.RUnlock()
	sortNewest(out)
	return out[:min(len(out), listLimit(limit))], nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// sortNewest orders charts by creation time, newest first, breaking ties
// by ID.
func sortNewest(charts []*Chart) {
	slices.SortFunc(charts, func(a, b *Chart) int {
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
}

var _ Store = (*MemoryStore)(nil)
