// Package diff turns unified diff text into the flat line model the review
// view renders, in unified or side-by-side layout.
package diff

import (
	"sort"
	"strings"
)

// LineKind classifies a line of the parsed diff.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
	LineFileHeader
	LineHunkHeader
	// LineEmpty appears only in side-by-side cells, as run padding.
	LineEmpty
)

// Line is one display line of a parsed diff, tagged with the file it
// belongs to.
type Line struct {
	Kind LineKind
	Text string
	File string
}

// UntrackedFile is the capped head read of a file git does not track yet.
// A read error degrades the file to a header-only entry.
type UntrackedFile struct {
	Path  string
	Lines []string
	Err   error
}

type fileGroup struct {
	path  string
	lines []Line
}

// Parse scans unified diff text into the flat line sequence. Untracked
// files are appended as synthetic all-added files, and the combined set is
// re-sorted alphabetically by path so file navigation is predictable no
// matter what order git emitted the diff in. Empty input yields an empty
// sequence, never an error.
func Parse(diffText string, untracked []UntrackedFile) []Line {
	var groups []*fileGroup
	var current *fileGroup
	inHunk := false

	for _, raw := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(raw, "diff --git ") {
			path := headerPath(raw)
			current = &fileGroup{path: path}
			current.lines = append(current.lines, Line{Kind: LineFileHeader, Text: path, File: path})
			groups = append(groups, current)
			inHunk = false
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(raw, "@@") {
			if trailing := hunkTrailing(raw); trailing != "" {
				current.lines = append(current.lines, Line{Kind: LineHunkHeader, Text: raw, File: current.path})
			}
			inHunk = true
			continue
		}
		if !inHunk {
			// index/mode/rename metadata and the ---/+++ pair sit
			// between the file header and the first hunk.
			continue
		}

		switch {
		case raw == "":
			current.lines = append(current.lines, Line{Kind: LineContext, Text: " ", File: current.path})
		case raw[0] == '+':
			current.lines = append(current.lines, Line{Kind: LineAdded, Text: blankToSpace(raw[1:]), File: current.path})
		case raw[0] == '-':
			current.lines = append(current.lines, Line{Kind: LineRemoved, Text: blankToSpace(raw[1:]), File: current.path})
		case raw[0] == ' ':
			current.lines = append(current.lines, Line{Kind: LineContext, Text: blankToSpace(raw[1:]), File: current.path})
		default:
			// "\ No newline at end of file" and anything else unknown.
		}
	}

	for _, uf := range untracked {
		g := &fileGroup{path: uf.Path}
		g.lines = append(g.lines, Line{Kind: LineFileHeader, Text: uf.Path + " (new file)", File: uf.Path})
		if uf.Err == nil {
			for _, text := range uf.Lines {
				g.lines = append(g.lines, Line{Kind: LineAdded, Text: blankToSpace(text), File: uf.Path})
			}
		}
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].path < groups[j].path })

	var out []Line
	for _, g := range groups {
		out = append(out, g.lines...)
	}
	return out
}

// headerPath extracts the file path from a "diff --git a/... b/..." line,
// preferring the b side.
func headerPath(line string) string {
	rest := strings.TrimPrefix(line, "diff --git ")
	if i := strings.LastIndex(rest, " b/"); i >= 0 && i+3 < len(rest) {
		return rest[i+3:]
	}
	if strings.HasPrefix(rest, "a/") {
		if i := strings.Index(rest, " "); i > 0 {
			return rest[2:i]
		}
		return rest[2:]
	}
	return rest
}

// hunkTrailing returns the context text after the closing @@ of a hunk
// header, if any. Headers without trailing text are not worth a display
// row of their own.
func hunkTrailing(line string) string {
	close := strings.Index(line[2:], "@@")
	if close == -1 {
		return ""
	}
	return strings.TrimSpace(line[close+4:])
}

// blankToSpace keeps fully blank lines one space wide so the cursor row
// stays visible when highlighted.
func blankToSpace(s string) string {
	if s == "" {
		return " "
	}
	return s
}
