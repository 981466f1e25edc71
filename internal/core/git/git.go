// Package git wraps the git command line for the worktree and diff
// operations the dashboard needs.
package git

import "context"

// Git defines the git operations consumed by the TUI and commands.
type Git interface {
	// Diff returns the unified diff of dir's working tree against ref,
	// HEAD when ref is empty.
	Diff(ctx context.Context, dir, ref string) (string, error)
	// ListUntracked returns untracked, non-ignored paths in dir.
	ListUntracked(ctx context.Context, dir string) ([]string, error)
	// ReadWorkingFile returns up to maxLines lines of a working-tree file.
	ReadWorkingFile(dir, path string, maxLines int) (string, error)
	// Worktrees lists the worktrees of the repository containing dir.
	Worktrees(ctx context.Context, dir string) ([]Worktree, error)
	// AddWorktree creates a worktree at path on branch; create makes the
	// branch first.
	AddWorktree(ctx context.Context, dir, path, branch string, create bool) error
	// RemoveWorktree removes the worktree at path.
	RemoveWorktree(ctx context.Context, dir, path string, force bool) error
	// PruneWorktrees drops registrations whose directories are gone.
	PruneWorktrees(ctx context.Context, dir string) error
	// Branch returns the current branch name, or short commit SHA if in detached HEAD state.
	Branch(ctx context.Context, dir string) (string, error)
	// IsClean returns true if there are no uncommitted changes in dir.
	IsClean(ctx context.Context, dir string) (bool, error)
	// DiffStats returns the number of lines added and deleted compared to HEAD.
	DiffStats(ctx context.Context, dir string) (additions, deletions int, err error)
	// RemoteURL returns the origin remote URL for dir.
	RemoteURL(ctx context.Context, dir string) (string, error)
}

// Worktree is one entry of `git worktree list`.
type Worktree struct {
	Path   string
	Head   string
	Branch string // empty when detached or bare
	Bare   bool
}
