// Package review holds reviewer comments keyed to diff lines and delivers
// them to a worktree's agent session.
package review

import "sync"

// FileLevelIndex is the per-file sentinel key for comments that target the
// whole file rather than one line. Comments whose line lost its stable
// index collapse into the same slot.
const FileLevelIndex = -1

// Comment is one piece of reviewer feedback, keyed by (File, LineIndex).
type Comment struct {
	File      string
	LineIndex int    // per-file current-version index, FileLevelIndex if none
	LineText  string // the commented line as displayed, prompt context
	Body      string
	FileLevel bool
}

type commentKey struct {
	file  string
	index int
}

// Store is the comment queue for a single worktree. A mutex guards it:
// delivery reads the queue from a background command while the UI loop
// mutates it.
type Store struct {
	mu    sync.Mutex
	byKey map[commentKey]Comment
	order []commentKey
}

// NewStore creates an empty comment store.
func NewStore() *Store {
	return &Store{byKey: make(map[commentKey]Comment)}
}

// Add inserts or overwrites the comment at its key. Overwriting keeps the
// key's original queue position.
func (s *Store) Add(c Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := commentKey{file: c.File, index: c.LineIndex}
	if _, ok := s.byKey[k]; !ok {
		s.order = append(s.order, k)
	}
	s.byKey[k] = c
}

// Remove drops the comment at (file, index).
func (s *Store) Remove(file string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := commentKey{file: file, index: index}
	if _, ok := s.byKey[k]; !ok {
		return
	}
	delete(s.byKey, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Has reports whether a comment exists at (file, index).
func (s *Store) Has(file string, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byKey[commentKey{file: file, index: index}]
	return ok
}

// Get returns the comment at (file, index).
func (s *Store) Get(file string, index int) (Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byKey[commentKey{file: file, index: index}]
	return c, ok
}

// All returns the queued comments in first-insertion order.
func (s *Store) All() []Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Comment, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// Count returns the number of queued comments.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Clear empties the queue.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey = make(map[commentKey]Comment)
	s.order = nil
}

// Registry hands out one comment store per worktree path, so concurrently
// open reviews on different worktrees never share a queue.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates an empty store registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// For returns the store for a worktree path, creating it on first use.
func (r *Registry) For(worktree string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stores[worktree]
	if !ok {
		st = NewStore()
		r.stores[worktree] = st
	}
	return st
}

// Remove disposes the store for a worktree that no longer exists.
func (r *Registry) Remove(worktree string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, worktree)
}
