package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-era/devteam-sub000/pkg/executil"
)

func TestNewCmd_DefaultPathAndAgent(t *testing.T) {
	g := &fakeGit{}
	exec := &executil.RecordingExecutor{}
	app := newTestApp(t, g, exec)

	out, err := runCmd(t, NewNewCmd(&Flags{}, app).Register, "new", "-b", "feat/x")
	require.NoError(t, err)

	assert.Equal(t, "/work/repo-wt/feat-x", g.addedPath)
	assert.Equal(t, "feat/x", g.addedBranch)
	assert.True(t, g.addedCreate)

	assert.Contains(t, out, "Created worktree feat/x at /work/repo-wt/feat-x")
	assert.Contains(t, out, "Started claude in session dt-feat-x")
	assert.Contains(t, out, "tmux attach -t dt-feat-x")

	// has-session succeeds under an empty recorder, so the agent is
	// respawned into the existing session.
	require.Len(t, exec.Commands, 2)
	assert.Equal(t, []string{"has-session", "-t", "=dt-feat-x"}, exec.Commands[0].Args)
	assert.Equal(t, []string{"respawn-pane", "-k", "-t", "dt-feat-x", "--", "claude"}, exec.Commands[1].Args)
}

func TestNewCmd_ExplicitPath(t *testing.T) {
	g := &fakeGit{}
	app := newTestApp(t, g, &executil.RecordingExecutor{})

	_, err := runCmd(t, NewNewCmd(&Flags{}, app).Register, "new", "-b", "feat/x", "-p", "/scratch/feat-x", "-a", "none")
	require.NoError(t, err)

	assert.Equal(t, "/scratch/feat-x", g.addedPath)
}

func TestNewCmd_AgentNoneSkipsSpawn(t *testing.T) {
	g := &fakeGit{}
	exec := &executil.RecordingExecutor{}
	app := newTestApp(t, g, exec)

	out, err := runCmd(t, NewNewCmd(&Flags{}, app).Register, "new", "-b", "feat/x", "--agent", "none")
	require.NoError(t, err)

	assert.Contains(t, out, "Created worktree feat/x")
	assert.NotContains(t, out, "Started")
	assert.Empty(t, exec.Commands, "no tmux calls when no agent is launched")
}

func TestNewCmd_UnknownAgent(t *testing.T) {
	g := &fakeGit{}
	app := newTestApp(t, g, &executil.RecordingExecutor{})

	_, err := runCmd(t, NewNewCmd(&Flags{}, app).Register, "new", "-b", "feat/x", "--agent", "cursor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown agent kind")

	// Rejected before the worktree is created.
	assert.Empty(t, g.addedPath)
}

func TestNewCmd_CreateError(t *testing.T) {
	app := newTestApp(t, &fakeGit{err: assert.AnError}, &executil.RecordingExecutor{})

	_, err := runCmd(t, NewNewCmd(&Flags{}, app).Register, "new", "-b", "feat/x", "--agent", "none")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create worktree")
}

func TestNewCmd_BadBranchName(t *testing.T) {
	g := &fakeGit{}
	app := newTestApp(t, g, &executil.RecordingExecutor{})

	_, err := runCmd(t, NewNewCmd(&Flags{}, app).Register, "new", "-b", "feat..x", "--agent", "none")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved sequence")
	assert.Empty(t, g.addedPath)
}
