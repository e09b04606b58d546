package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pixil98/go-adventure/internal/leaderboard"
	"github.com/pixil98/go-adventure/internal/leaderboard/bolt"
	"github.com/pixil98/go-adventure/internal/leaderboard/sqlite"
	"github.com/pixil98/go-errors"
)

const (
	LeaderboardMemory = "memory"
	LeaderboardSqlite = "sqlite"
	LeaderboardBolt   = "bolt"
)

type LeaderboardConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path"`
}

func (c *LeaderboardConfig) validate() error {
	el := errors.NewErrorList()

	switch c.driver() {
	case LeaderboardMemory:
	case LeaderboardSqlite, LeaderboardBolt:
		if c.Path == "" {
			el.Add(fmt.Errorf("leaderboard path is required for the %s driver", c.Driver))
		}
	default:
		el.Add(fmt.Errorf("unknown leaderboard driver %q", c.Driver))
	}

	return el.Err()
}

func (c *LeaderboardConfig) driver() string {
	if c.Driver == "" {
		return LeaderboardMemory
	}
	return c.Driver
}

// ClosableStore is a leaderboard that holds resources until closed.
type ClosableStore interface {
	leaderboard.Store
	Close() error
}

func (c *LeaderboardConfig) BuildStore() (ClosableStore, error) {
	switch c.driver() {
	case LeaderboardMemory:
		return leaderboard.NewMemoryStore(), nil
	case LeaderboardSqlite:
		if err := ensureDir(c.Path); err != nil {
			return nil, err
		}
		return sqlite.Open(c.Path)
	case LeaderboardBolt:
		if err := ensureDir(c.Path); err != nil {
			return nil, err
		}
		return bolt.Open(c.Path)
	default:
		return nil, fmt.Errorf("unknown leaderboard driver %q", c.Driver)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("creating leaderboard directory %q: %w", dir, err)
	}
	return nil
}

// storeCloser closes the leaderboard when the application stops.
type storeCloser struct {
	store ClosableStore
}

func (s *storeCloser) Start(ctx context.Context) error {
	<-ctx.Done()
	err := s.store.Close()
	if err != nil {
		return fmt.Errorf("closing leaderboard: %w", err)
	}
	slog.InfoContext(ctx, "leaderboard closed")
	return nil
}
