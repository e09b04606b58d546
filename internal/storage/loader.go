package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
)

// mapFile is the on-disk shape of a map.
type mapFile struct {
	Intro string       `json:"intro,omitempty"`
	Rooms []*game.Room `json:"rooms"`
}

// LoadMap reads and validates the map at path.
func LoadMap(path string) (*game.Graph, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("map path is required: %w", game.ErrInvalidInput)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading map %q: %w: %w", path, game.ErrNotFound, err)
	}

	g, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("loading map %q: %w", path, err)
	}
	return g, nil
}

// ParseMap decodes and validates a map. Nothing is returned unless the whole map is valid.
func ParseMap(data []byte) (*game.Graph, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, game.ErrEmptySource
	}

	var mf mapFile
	err := json.Unmarshal(data, &mf)
	if err != nil {
		return nil, game.NewStructuralError(fmt.Errorf("decoding map: %w", err))
	}

	g := game.NewGraph(mf.Rooms)
	g.Intro = mf.Intro

	err = g.Validate()
	if err != nil {
		return nil, game.NewStructuralError(err)
	}

	return g, nil
}

// FindMaps walks root and returns every json file beneath it.
// A root that is a file is returned as is.
func FindMaps(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root && !info.IsDir() {
			paths = append(paths, path)
			return nil
		}
		if !info.IsDir() && filepath.Ext(path) == ".json" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
