package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Diff returns the unified diff of dir's working tree against ref.
// An empty ref compares against HEAD, covering both staged and unstaged
// changes.
func (e *Executor) Diff(ctx context.Context, dir, ref string) (string, error) {
	if ref == "" {
		ref = "HEAD"
	}
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "diff", ref)
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(out), nil
}

// ListUntracked returns the paths of untracked files in dir, honoring the
// repository's ignore rules.
func (e *Executor) ListUntracked(ctx context.Context, dir string) ([]string, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("list untracked: %w", err)
	}

	var paths []string
	for line := range strings.SplitSeq(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

// ReadWorkingFile returns up to maxLines lines of path under dir, with a
// trailing newline per line. maxLines <= 0 reads the whole file. Files
// that look binary (NUL in the first block) are refused.
func (e *Executor) ReadWorkingFile(dir, path string, maxLines int) (string, error) {
	f, err := os.Open(filepath.Join(dir, path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 8000)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if bytes.IndexByte(head[:n], 0) != -1 {
		return "", fmt.Errorf("read %s: binary file", path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var b strings.Builder
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lines := 0
	for sc.Scan() {
		if maxLines > 0 && lines >= maxLines {
			break
		}
		b.WriteString(sc.Text())
		b.WriteByte('\n')
		lines++
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return b.String(), nil
}
