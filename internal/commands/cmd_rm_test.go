package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-era/devteam-sub000/internal/core/git"
	"github.com/agent-era/devteam-sub000/pkg/executil"
)

func rmTestApp(t *testing.T) (*fakeGit, *executil.RecordingExecutor, func(args ...string) (string, error)) {
	t.Helper()
	g := &fakeGit{worktrees: []git.Worktree{
		{Path: "/work/repo", Branch: "main"},
		{Path: "/work/repo-wt/feat-x", Branch: "feat/x"},
	}}
	exec := &executil.RecordingExecutor{}
	app := newTestApp(t, g, exec)
	run := func(args ...string) (string, error) {
		return runCmd(t, NewRmCmd(&Flags{}, app).Register, append([]string{"rm"}, args...)...)
	}
	return g, exec, run
}

func TestRmCmd_RemovesByBranch(t *testing.T) {
	g, exec, run := rmTestApp(t)

	out, err := run("--yes", "feat/x")
	require.NoError(t, err)

	assert.Equal(t, "/work/repo-wt/feat-x", g.removedPath)
	assert.False(t, g.removedForce)
	assert.Contains(t, out, "Removed worktree /work/repo-wt/feat-x")

	// has-session succeeds under an empty recorder, so the session is
	// killed before the checkout goes.
	var killed bool
	for _, cmd := range exec.Commands {
		if len(cmd.Args) > 0 && cmd.Args[0] == "kill-session" {
			killed = true
			assert.Equal(t, []string{"kill-session", "-t", "dt-feat-x"}, cmd.Args)
		}
	}
	assert.True(t, killed, "expected the worktree's session to be killed")
}

func TestRmCmd_Force(t *testing.T) {
	g, _, run := rmTestApp(t)

	_, err := run("--yes", "--force", "feat/x")
	require.NoError(t, err)
	assert.True(t, g.removedForce)
}

func TestRmCmd_RefusesMainCheckout(t *testing.T) {
	g, _, run := rmTestApp(t)

	_, err := run("--yes", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main checkout")
	assert.Empty(t, g.removedPath)
}

func TestRmCmd_MissingArg(t *testing.T) {
	_, _, run := rmTestApp(t)

	_, err := run("--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worktree argument required")
}

func TestRmCmd_UnknownWorktree(t *testing.T) {
	_, _, run := rmTestApp(t)

	_, err := run("--yes", "feat/nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no worktree matches")
}
