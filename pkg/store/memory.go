package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/gridspace/pkg/scene"
)

// MemoryStore keeps layouts in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]*scene.Layout
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]*scene.Layout)}
}

func (s *MemoryStore) Save(_ context.Context, l *scene.Layout) error {
	if err := stamp(l); err != nil {
		return err
	}
	cp := *l
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[l.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*scene.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[id]; !ok {
		return ErrNotFound
	}
	delete(s.layouts, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*scene.Layout, error) {
	s.mu.RLock()
	out := make([]*scene.Layout, 0, len(s.layouts))
	for _, l := range s.layouts {
		cp := *l
		out = append(out, &cp)
	}
	s.mu.RUnlock()
	return newestFirst(out, limit), nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func newestFirst(ls []*scene.Layout, limit int) []*scene.Layout {
	sort.Slice(ls, func(i, j int) bool {
		if !ls[i].CreatedAt.Equal(ls[j].CreatedAt) {
			return ls[i].CreatedAt.After(ls[j].CreatedAt)
		}
		return ls[i].ID < ls[j].ID
	})
	if limit > 0 && len(ls) > limit {
		ls = ls[:limit]
	}
	return ls
}

var _ Store = (*MemoryStore)(nil)
