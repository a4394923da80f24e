package dex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Cache file layout inside the data directory.
const (
	DataFile  = "professordata.json"
	GroupFile = "egg_groups.json"
	SpriteDir = "sprites"
)

// LoadPool reads the Pokémon cache file at path.
func LoadPool(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var entities []Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	pool, err := NewPool(entities)
	if err != nil {
		return nil, fmt.Errorf("building pool from %s: %w", path, err)
	}
	return pool, nil
}

// LoadGroups reads the egg group translation file. A missing file yields an
// empty table: every key then displays as itself.
func LoadGroups(path string) (GroupTable, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return GroupTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	groups := GroupTable{}
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return groups, nil
}

// SaveJSON writes v as indented JSON to path via a temporary file so a
// crash never leaves a truncated cache behind.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Clear deletes the cached data file, egg group file and sprite directory
// under dir. It returns the paths that were actually removed.
func Clear(dir string) ([]string, error) {
	var removed []string
	for _, name := range []string{DataFile, GroupFile, SpriteDir} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
