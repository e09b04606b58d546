package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore keeps scores in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	scores map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: map[string]int{}}
}

func (s *MemoryStore) Upsert(ctx context.Context, name string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("player name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores[name] = score
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := make([]Entry, 0, len(s.scores))
	for name, score := range s.scores {
		entries = append(entries, Entry{Name: name, Score: score})
	}
	s.mu.RUnlock()

	Sort(entries)
	return entries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
