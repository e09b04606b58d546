// Package bolt provides a BoltDB-backed leaderboard.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pixil98/go-adventure/internal/leaderboard"
	"go.etcd.io/bbolt"
)

const scoreBucket = "leaderboard"

// Store persists leaderboard entries in a BoltDB file keyed by player name.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed leaderboard at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Upsert records score for name. The latest write wins.
func (s *Store) Upsert(ctx context.Context, name string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("player name is required")
	}

	payload, err := json.Marshal(leaderboard.Entry{Name: name, Score: score})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scoreBucket))
		if bucket == nil {
			return fmt.Errorf("leaderboard bucket is missing")
		}
		return bucket.Put([]byte(name), payload)
	})
}

// List returns every entry ordered by ascending score, then name.
func (s *Store) List(ctx context.Context) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	entries := []leaderboard.Entry{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scoreBucket))
		if bucket == nil {
			return fmt.Errorf("leaderboard bucket is missing")
		}
		return bucket.ForEach(func(key, value []byte) error {
			var e leaderboard.Entry
			if err := json.Unmarshal(value, &e); err != nil {
				return fmt.Errorf("decode entry %q: %w", key, err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	leaderboard.Sort(entries)
	return entries, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(scoreBucket))
		if err != nil {
			return fmt.Errorf("create leaderboard bucket: %w", err)
		}
		return nil
	})
}
