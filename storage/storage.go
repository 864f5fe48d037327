// Package storage persists session state between runs, the way the web
// storefront keeps its token and profile in localStorage. Each key is a
// flat file in the state directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Keys used by the session store.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is a durable string key-value store backed by a directory.
type Store struct {
	dir string
}

// Open creates the state directory if needed and returns a store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get returns the value for key, or "" when the key has never been set.
func (s *Store) Get(key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes the value for key.
func (s *Store) Set(key, value string) error {
	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	// Keys are fixed short names; the replace guards against surprises.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe)
}
