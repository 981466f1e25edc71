// Package state persists UI preferences between runs.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// State is the snapshot written to disk. Review comments are deliberately
// not part of it; only presentation preferences survive a restart.
type State struct {
	Layout   string `json:"layout,omitempty"`
	Wrap     bool   `json:"wrap,omitempty"`
	Worktree string `json:"worktree,omitempty"`
}

// Store reads and writes the snapshot at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved snapshot. A missing or unreadable file yields the
// zero snapshot; preferences are never worth failing startup over.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st State
	data, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

// Save writes the snapshot atomically via a temp file rename.
func (s *Store) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Exists reports whether a snapshot has been written before.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, fs.ErrNotExist)
}
