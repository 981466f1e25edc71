package review

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// filesChangedMsg is sent when the worktree changes on disk.
type filesChangedMsg struct{}

// WorktreeWatcher watches a worktree for file changes so the diff can be
// reloaded while the agent edits.
type WorktreeWatcher struct {
	watcher     *fsnotify.Watcher
	root        string
	ignore      []string
	debounceDur time.Duration
}

// NewWorktreeWatcher watches root and its subdirectories, skipping dot
// directories and paths matching the ignore globs.
func NewWorktreeWatcher(root string, ignore []string) (*WorktreeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &WorktreeWatcher{
		watcher:     watcher,
		root:        root,
		ignore:      ignore,
		debounceDur: 100 * time.Millisecond,
	}

	if err := w.addRecursive(root); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start returns a command that blocks until files settle after a change.
func (w *WorktreeWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if w.shouldIgnore(event.Name) {
					continue
				}

				// New directories need watching too.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						w.addRecursive(event.Name)
					}
				}

				// Debounce: wait for the burst to settle, then drain
				// whatever arrived meanwhile.
				time.Sleep(w.debounceDur)
				drained := false
				for !drained {
					select {
					case <-w.watcher.Events:
					default:
						drained = true
					}
				}

				return filesChangedMsg{}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// addRecursive adds a directory and its subdirectories to the watcher.
func (w *WorktreeWatcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable directories
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != w.root {
				return filepath.SkipDir
			}
			return w.watcher.Add(p)
		}
		return nil
	})
}

// shouldIgnore filters events from noise writers: editor temp files,
// anything under a dot directory, and paths the ignore globs cover. A
// reload triggered by a build artifact would churn the diff for nothing.
func (w *WorktreeWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, ext := range []string{".tmp", ".lock", ".swp", ".swx", "~"} {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, ".") {
		return true
	}
	for _, pattern := range w.ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Close stops the watcher.
func (w *WorktreeWatcher) Close() error {
	return w.watcher.Close()
}
