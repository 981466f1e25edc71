package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
	"github.com/agent-era/devteam-sub000/internal/core/config"
	"github.com/agent-era/devteam-sub000/internal/core/git"
	"github.com/agent-era/devteam-sub000/internal/core/tmux"
	"github.com/agent-era/devteam-sub000/internal/devteam"
	"github.com/agent-era/devteam-sub000/pkg/executil"
)

// fakeGit satisfies git.Git with canned worktree and diff data.
type fakeGit struct {
	worktrees []git.Worktree
	err       error

	// Per-path state served to IsClean and DiffStats.
	dirtyPaths map[string]bool
	additions  map[string]int
	deletions  map[string]int

	addedPath   string
	addedBranch string
	addedCreate bool

	removedPath  string
	removedForce bool
}

func (f *fakeGit) Diff(ctx context.Context, dir, ref string) (string, error) { return "", nil }
func (f *fakeGit) ListUntracked(ctx context.Context, dir string) ([]string, error) {
	return nil, nil
}
func (f *fakeGit) ReadWorkingFile(dir, path string, maxLines int) (string, error) { return "", nil }
func (f *fakeGit) Worktrees(ctx context.Context, dir string) ([]git.Worktree, error) {
	return f.worktrees, f.err
}
func (f *fakeGit) AddWorktree(ctx context.Context, dir, path, branch string, create bool) error {
	f.addedPath = path
	f.addedBranch = branch
	f.addedCreate = create
	return f.err
}
func (f *fakeGit) RemoveWorktree(ctx context.Context, dir, path string, force bool) error {
	f.removedPath = path
	f.removedForce = force
	return f.err
}
func (f *fakeGit) PruneWorktrees(ctx context.Context, dir string) error { return f.err }
func (f *fakeGit) Branch(ctx context.Context, dir string) (string, error) { return "main", nil }
func (f *fakeGit) IsClean(ctx context.Context, dir string) (bool, error) {
	return !f.dirtyPaths[dir], nil
}
func (f *fakeGit) DiffStats(ctx context.Context, dir string) (int, int, error) {
	return f.additions[dir], f.deletions[dir], nil
}
func (f *fakeGit) RemoteURL(ctx context.Context, dir string) (string, error) { return "", nil }

func newTestApp(t *testing.T, g git.Git, exec executil.Executor) *devteam.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	// Keep delivery verification from sleeping through the test.
	cfg.Review.SettleDelayMS = 1
	return devteam.NewApp(&cfg, g, tmux.New("tmux", exec), agent.Builtin(), "/work/repo")
}

// runCmd registers the command on a fresh root and runs it, returning
// whatever was written to the root writer.
func runCmd(t *testing.T, register func(*cli.Command) *cli.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := register(&cli.Command{Name: "devteam", Writer: &buf})
	err := root.Run(context.Background(), append([]string{"devteam"}, args...))
	return buf.String(), err
}
