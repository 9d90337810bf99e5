package proposal

import (
	"context"
	"sync"
	"time"

	"roomdesk-backend/internal/domain"
)

// MemoryStore is the single-process Store used when no redis address is
// configured.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]domain.Proposal
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string]domain.Proposal{}, now: time.Now}
}

func (s *MemoryStore) Save(ctx context.Context, p *domain.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict()
	cp := *p
	cp.Moves = append([]domain.Move(nil), p.Moves...)
	s.items[p.ID] = cp
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok || ttl(&p, s.now()) == 0 {
		delete(s.items, id)
		return nil, ErrNotFound
	}
	p.Moves = append([]domain.Move(nil), p.Moves...)
	return &p, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) evict() {
	now := s.now()
	for id, p := range s.items {
		if ttl(&p, now) == 0 {
			delete(s.items, id)
		}
	}
}
