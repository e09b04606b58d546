package storage

import (
	"sync"

	"github.com/pixil98/go-adventure/internal/game"
)

// FileMap loads the map from disk every time a graph is requested.
type FileMap struct {
	path string
}

func NewFileMap(path string) *FileMap {
	return &FileMap{path: path}
}

func (m *FileMap) Graph() (*game.Graph, error) {
	return LoadMap(m.path)
}

// CachedMap parses the map once and hands out deep copies.
type CachedMap struct {
	path string

	mu    sync.Mutex
	graph *game.Graph
}

func NewCachedMap(path string) *CachedMap {
	return &CachedMap{path: path}
}

// Graph returns a private copy of the cached map, loading it on first use.
// A failed load is not cached.
func (m *CachedMap) Graph() (*game.Graph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.graph == nil {
		g, err := LoadMap(m.path)
		if err != nil {
			return nil, err
		}
		m.graph = g
	}

	return m.graph.Clone(), nil
}
