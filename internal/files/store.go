// Package files maps file route names onto a base directory.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrNotFound   = errors.New("file not found")
	ErrUnsafePath = errors.New("path escapes base directory")
)

// Store reads and writes files under one base directory. Concurrent access
// to the same name is not coordinated.
type Store struct {
	dir             string
	rejectTraversal bool
}

// New returns a Store rooted at dir. With rejectTraversal set, names that
// are absolute or contain ".." elements are refused.
func New(dir string, rejectTraversal bool) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{
		dir:             dir,
		rejectTraversal: rejectTraversal,
	}
}

// Dir returns the base directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves name against the base directory.
func (s *Store) Path(name string) (string, error) {
	if s.rejectTraversal && !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(s.dir, filepath.FromSlash(name)), nil
}

// Read returns the full contents of name. Any failure to open or read a
// regular file is reported as ErrNotFound.
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
	}
	return data, nil
}

// Write creates or truncates name and stores data as its exact content.
func (s *Store) Write(name string, data []byte) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
