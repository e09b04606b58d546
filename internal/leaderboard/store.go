package leaderboard

import (
	"context"
	"sort"
)

// Entry is one player's recorded score.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Store persists the most recent score per player name.
type Store interface {
	// Upsert records score for name, replacing any previous score.
	Upsert(ctx context.Context, name string, score int) error
	// List returns every entry ordered by ascending score, then name.
	List(ctx context.Context) ([]Entry, error)
}

// Sort orders entries by ascending score, breaking ties by name.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
}
