package leaderboard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestSort(t *testing.T) {
	tests := map[string]struct {
		entries []Entry
		exp     []Entry
	}{
		"empty": {
			entries: []Entry{},
			exp:     []Entry{},
		},
		"ascending by score": {
			entries: []Entry{{"a", 9}, {"b", 2}, {"c", 5}},
			exp:     []Entry{{"b", 2}, {"c", 5}, {"a", 9}},
		},
		"ties by name": {
			entries: []Entry{{"zed", 3}, {"amy", 3}, {"bob", 1}},
			exp:     []Entry{{"bob", 1}, {"amy", 3}, {"zed", 3}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			Sort(tt.entries)
			if !slices.Equal(tt.entries, tt.exp) {
				t.Errorf("got %v, expected %v", tt.entries, tt.exp)
			}
		})
	}
}

func TestMemoryStore_UpsertList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, e := range []Entry{{"Ada", 7}, {"Grace", 3}, {"Ada", 4}} {
		if err := s.Upsert(ctx, e.Name, e.Score); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exp := []Entry{{"Grace", 3}, {"Ada", 4}}
	if !slices.Equal(got, exp) {
		t.Errorf("got %v, expected %v", got, exp)
	}
}

func TestMemoryStore_Errors(t *testing.T) {
	s := NewMemoryStore()

	err := s.Upsert(context.Background(), " ", 1)
	testutil.AssertErrorContains(t, err, "player name is required")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Upsert(ctx, "Ada", 1)
	testutil.AssertErrorContains(t, err, "context canceled")
	_, err = s.List(ctx)
	testutil.AssertErrorContains(t, err, "context canceled")
}

func TestMemoryStore_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Upsert(ctx, fmt.Sprintf("player-%d", i%10), i); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "entries", len(got), 10)
}
