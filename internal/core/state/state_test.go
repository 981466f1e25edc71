package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s := NewStore(path)

	assert.False(t, s.Exists())

	want := State{Layout: "side-by-side", Wrap: true, Worktree: "/work/feature"}
	require.NoError(t, s.Save(want))

	assert.True(t, s.Exists())
	assert.Equal(t, want, s.Load())
}

func TestStore_MissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.json"))
	assert.Equal(t, State{}, s.Load())
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	s := NewStore(path)
	assert.Equal(t, State{}, s.Load())
}

func TestStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewStore(path)

	require.NoError(t, s.Save(State{Layout: "unified"}))
	require.NoError(t, s.Save(State{Layout: "side-by-side", Worktree: "/work/x"}))

	got := s.Load()
	assert.Equal(t, "side-by-side", got.Layout)
	assert.Equal(t, "/work/x", got.Worktree)

	// No temp file left behind.
	_, err := os.Stat(path + ".tmp")
	assert.Error(t, err)
}
