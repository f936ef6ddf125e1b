package casefile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"advisor/internal/intake"
	"advisor/internal/recommend"
	"advisor/pkg/platform/sentinel"
)

// InMemory keeps cases in process memory. Used by tests and by embedders
// that manage their own persistence.
type InMemory struct {
	mu    sync.RWMutex
	cases []Case
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Save(_ context.Context, profile intake.ClientProfile, results []recommend.Item) (Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := NewCase(profile, results, time.Now())
	s.cases = append(s.cases, c)
	return c, nil
}

func (s *InMemory) List(_ context.Context) ([]Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Case{}, s.cases...), nil
}

func (s *InMemory) Load(_ context.Context, id string) (Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cases {
		if c.ID == id {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("case %s: %w", id, sentinel.ErrNotFound)
}

func (s *InMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cases {
		if c.ID == id {
			s.cases = append(s.cases[:i], s.cases[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("case %s: %w", id, sentinel.ErrNotFound)
}
