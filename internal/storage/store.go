// Package storage is the document file store: a directory tree under a
// configured upload root, keyed by project-scoped storage keys so two
// uploads can never overwrite each other on disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrBadKey is returned for keys that would resolve outside the root.
var ErrBadKey = errors.New("invalid storage key")

// Store reads and writes document files under a root directory.
type Store struct {
	root string
}

// NewStore creates the upload root if needed and returns a store over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &Store{root: root}, nil
}

// NewKey generates a unique storage key for a document in projectID,
// keeping the sanitized display name's extension for convenience.
func NewKey(projectID uint, displayName string) string {
	ext := filepath.Ext(displayName)
	return fmt.Sprintf("%d/%s%s", projectID, uuid.NewString(), ext)
}

// Save writes the document body under key and returns the written size.
func (s *Store) Save(key string, r io.Reader) (int64, error) {
	path, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	dst, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	return io.Copy(dst, r)
}

// Path resolves key to its on-disk location.
func (s *Store) Path(key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the file for key.
func (s *Store) Remove(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// path joins key onto the root, refusing any key that escapes it.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", ErrBadKey
	}
	path := filepath.Join(s.root, filepath.FromSlash(key))

	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrBadKey
	}
	return path, nil
}
