package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-era/devteam-sub000/pkg/executil"
)

func TestExecutor_Diff(t *testing.T) {
	const sampleDiff = `diff --git a/file.go b/file.go
index abc123..def456 100644
--- a/file.go
+++ b/file.go
@@ -1,3 +1,4 @@
 package main

 func main() {
+	fmt.Println("hello")
 }`

	t.Run("default ref is HEAD", func(t *testing.T) {
		mock := &mockExecutor{
			runDirFunc: func(_ context.Context, dir, _ string, args ...string) ([]byte, error) {
				assert.Equal(t, "/work/feature", dir)
				assert.Equal(t, []string{"diff", "HEAD"}, args)
				return []byte(sampleDiff), nil
			},
		}
		e := NewExecutor("git", mock)

		got, err := e.Diff(context.Background(), "/work/feature", "")
		require.NoError(t, err)
		assert.Equal(t, sampleDiff, got)
	})

	t.Run("explicit ref", func(t *testing.T) {
		mock := &mockExecutor{
			runDirFunc: func(_ context.Context, _, _ string, args ...string) ([]byte, error) {
				assert.Equal(t, []string{"diff", "main"}, args)
				return []byte(sampleDiff), nil
			},
		}
		e := NewExecutor("git", mock)

		got, err := e.Diff(context.Background(), "/work/feature", "main")
		require.NoError(t, err)
		assert.Equal(t, sampleDiff, got)
	})
}

func TestExecutor_ListUntracked(t *testing.T) {
	t.Run("parses paths", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{"git": []byte("notes.txt\ninternal/new.go\n")},
		}
		e := NewExecutor("git", rec)

		paths, err := e.ListUntracked(context.Background(), "/work/feature")
		require.NoError(t, err)
		assert.Equal(t, []string{"notes.txt", "internal/new.go"}, paths)

		require.Len(t, rec.Commands, 1)
		assert.Equal(t, []string{"ls-files", "--others", "--exclude-standard"}, rec.Commands[0].Args)
	})

	t.Run("no untracked files", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{"git": []byte("\n")},
		}
		e := NewExecutor("git", rec)

		paths, err := e.ListUntracked(context.Background(), "/work/feature")
		require.NoError(t, err)
		assert.Empty(t, paths)
	})
}

func TestExecutor_ReadWorkingFile(t *testing.T) {
	e := NewExecutor("git", &executil.RecordingExecutor{})
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("one\ntwo\nthree\n"), 0o644))

	t.Run("whole file", func(t *testing.T) {
		got, err := e.ReadWorkingFile(dir, "notes.txt", 0)
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\nthree\n", got)
	})

	t.Run("caps at max lines", func(t *testing.T) {
		got, err := e.ReadWorkingFile(dir, "notes.txt", 2)
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\n", got)
	})

	t.Run("adds missing trailing newline", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bare.txt"), []byte("no newline"), 0o644))

		got, err := e.ReadWorkingFile(dir, "bare.txt", 0)
		require.NoError(t, err)
		assert.Equal(t, "no newline\n", got)
	})

	t.Run("refuses binary files", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte("ELF\x00\x01\x02"), 0o644))

		_, err := e.ReadWorkingFile(dir, "blob.bin", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "binary")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := e.ReadWorkingFile(dir, "missing.txt", 0)
		require.Error(t, err)
	})

	t.Run("long lines survive", func(t *testing.T) {
		long := strings.Repeat("x", 200_000)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "long.txt"), []byte(long+"\n"), 0o644))

		got, err := e.ReadWorkingFile(dir, "long.txt", 0)
		require.NoError(t, err)
		assert.Equal(t, long+"\n", got)
	})
}
