package review

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	corereview "github.com/agent-era/devteam-sub000/internal/core/review"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/tui/diff"
	"github.com/agent-era/devteam-sub000/pkg/textwrap"
)

// Column widths of the review chrome. The marker column shows the comment
// glyph, the number column the per-file line number of keyed lines.
const (
	markerWidth = 2
	numWidth    = 5
	sepWidth    = 3 // " │ "
)

const cellSeparator = " │ "

// lineBudget is the text budget of the unified layout.
func (v View) lineBudget() int {
	return max(10, v.width-markerWidth-numWidth)
}

// halfBudget is the per-cell text budget of the side-by-side layout.
func (v View) halfBudget() int {
	return max(10, (v.width-markerWidth-sepWidth)/2)
}

// geometry returns the per-index measuring lines and the text budget the
// active layout wraps against. In side-by-side layout the measuring line
// of a row is its taller cell, so the shared viewport math sees the row's
// real height.
func (v View) geometry() ([]string, int) {
	if v.layout == LayoutSideBySide {
		half := v.halfBudget()
		geom := make([]string, len(v.rows))
		for i, r := range v.rows {
			lt, rt := cellText(r.Left), cellText(r.Right)
			if textwrap.Rows(lt, half, v.wrap) >= textwrap.Rows(rt, half, v.wrap) {
				geom[i] = lt
			} else {
				geom[i] = rt
			}
		}
		return geom, half
	}

	geom := make([]string, len(v.lines))
	for i, ln := range v.lines {
		geom[i] = lineText(ln)
	}
	return geom, v.lineBudget()
}

// lineText is the exact text a unified line renders and measures as.
func lineText(ln diff.Line) string {
	if ln.Kind == diff.LineFileHeader {
		return styles.FileIcon(ln.File) + ln.Text
	}
	return ln.Text
}

// cellText is the exact text a side-by-side cell renders and measures as.
func cellText(c diff.Cell) string {
	switch c.Kind {
	case diff.LineEmpty:
		return ""
	case diff.LineFileHeader:
		return styles.FileIcon(c.File) + c.Text
	default:
		return c.Text
	}
}

// renderContent renders the visible window of the diff, height rows tall.
func (v View) renderContent(height int) string {
	geom, budget := v.geometry()
	vp := textwrap.VisibleLines(geom, v.scroll, height, budget, v.wrap)

	out := make([]string, 0, height)
	for pos, idx := range vp.Visible {
		var segs []string
		if v.layout == LayoutSideBySide {
			segs = v.renderRow(idx, budget)
		} else {
			segs = v.renderLine(idx, budget)
		}
		if pos == 0 && vp.StartRow > 0 {
			if vp.StartRow >= len(segs) {
				continue
			}
			segs = segs[vp.StartRow:]
		}
		out = append(out, segs...)
		if len(out) >= height {
			out = out[:height]
			break
		}
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// renderLine renders one unified line as its visual rows.
func (v View) renderLine(i, budget int) []string {
	ln := v.lines[i]
	segments := v.segments(lineText(ln), budget)
	selected := i == v.selected

	rows := make([]string, 0, len(segments))
	for si, seg := range segments {
		marker, num := "  ", strings.Repeat(" ", numWidth)
		if si == 0 {
			if v.hasCommentAt(i) {
				marker = styles.IconComment + " "
			}
			if key := v.keys[i]; key != diff.NoKey {
				num = fmt.Sprintf("%*d ", numWidth-1, key+1)
			}
		}

		if selected {
			row := marker + num + pad(seg, budget)
			rows = append(rows, styles.DiffSelectedStyle.Render(row))
			continue
		}
		row := styles.CommentMarkStyle.Render(marker) +
			styles.DiffLineNumStyle.Render(num) +
			kindStyle(ln.Kind).Render(seg)
		rows = append(rows, row)
	}
	return rows
}

// renderRow renders one side-by-side row as its visual rows. The shorter
// cell pads with blank rows so the two sides stay aligned.
func (v View) renderRow(i, half int) []string {
	r := v.rows[i]
	left := v.segments(cellText(r.Left), half)
	right := v.segments(cellText(r.Right), half)
	selected := i == v.selected

	n := max(len(left), len(right))
	rows := make([]string, 0, n)
	for si := 0; si < n; si++ {
		var ls, rs string
		if si < len(left) {
			ls = left[si]
		}
		if si < len(right) {
			rs = right[si]
		}

		marker := "  "
		if si == 0 && v.hasCommentAt(i) {
			marker = styles.IconComment + " "
		}

		if selected {
			row := marker + pad(ls, half) + cellSeparator + pad(rs, half)
			rows = append(rows, styles.DiffSelectedStyle.Render(row))
			continue
		}
		row := styles.CommentMarkStyle.Render(marker) +
			kindStyle(r.Left.Kind).Render(pad(ls, half)) +
			styles.MutedStyle.Render(cellSeparator) +
			kindStyle(r.Right.Kind).Render(rs)
		rows = append(rows, row)
	}
	return rows
}

// segments splits text into its visual rows for the active wrap mode.
func (v View) segments(text string, budget int) []string {
	if v.wrap == textwrap.Wrap {
		return textwrap.WrapLine(text, budget)
	}
	return []string{textwrap.Truncate(text, budget)}
}

// pad right-fills s with spaces to the given display width.
func pad(s string, width int) string {
	if w := textwrap.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// kindStyle maps a line kind to its display style.
func kindStyle(kind diff.LineKind) lipgloss.Style {
	switch kind {
	case diff.LineAdded:
		return styles.DiffAddedStyle
	case diff.LineRemoved:
		return styles.DiffRemovedStyle
	case diff.LineFileHeader:
		return styles.DiffFileStyle
	case diff.LineHunkHeader:
		return styles.DiffHunkStyle
	default:
		return styles.DiffContextStyle
	}
}

// hasCommentAt reports whether the display index carries a comment glyph:
// a line comment on keyed lines, the file-level comment on file headers.
func (v View) hasCommentAt(i int) bool {
	file := v.indexFile(i)
	if key := v.indexKey(i); key != diff.NoKey {
		return v.comments.Has(file, key)
	}
	if v.indexKind(i) == diff.LineFileHeader {
		return v.comments.Has(file, corereview.FileLevelIndex)
	}
	return false
}

// indexKind is the display kind of index i: the unified line's kind, or in
// side-by-side the right cell's kind with padding falling back to the left.
func (v View) indexKind(i int) diff.LineKind {
	if v.layout == LayoutSideBySide {
		r := v.rows[i]
		if r.Right.Kind == diff.LineEmpty {
			return r.Left.Kind
		}
		return r.Right.Kind
	}
	return v.lines[i].Kind
}

// indexFile is the file the display index belongs to.
func (v View) indexFile(i int) string {
	if v.layout == LayoutSideBySide {
		r := v.rows[i]
		if r.Right.File != "" {
			return r.Right.File
		}
		return r.Left.File
	}
	return v.lines[i].File
}

// indexKey is the comment key of the display index, NoKey when it has none.
func (v View) indexKey(i int) int {
	if v.layout == LayoutSideBySide {
		return v.rowKeys[i]
	}
	return v.keys[i]
}

// indexLineText is the current-version text of the display index, used as
// comment context.
func (v View) indexLineText(i int) string {
	if v.layout == LayoutSideBySide {
		return v.rows[i].Right.Text
	}
	return v.lines[i].Text
}

// location identifies a display position independent of layout: by comment
// key when the position has one, else by kind and per-file occurrence.
type location struct {
	file    string
	key     int
	kind    diff.LineKind
	ordinal int
}

// selectionLocation captures the current selection as a location.
func (v View) selectionLocation() (location, bool) {
	if v.length() == 0 {
		return location{}, false
	}
	i := v.selected
	loc := location{file: v.indexFile(i), key: v.indexKey(i), kind: v.indexKind(i)}
	if loc.key == diff.NoKey {
		loc.ordinal = v.keylessOrdinal(i)
	}
	return loc, true
}

// keylessOrdinal counts matching keyless positions before i.
func (v View) keylessOrdinal(i int) int {
	kind, file := v.indexKind(i), v.indexFile(i)
	n := 0
	for j := 0; j < i; j++ {
		if v.matchKeyless(j, kind, file) {
			n++
		}
	}
	return n
}

// matchKeyless reports whether display index i holds a keyless element of
// the given kind and file. Removed lines sit in left cells in side-by-side
// layout, even when the right cell pairs an added line with them.
func (v View) matchKeyless(i int, kind diff.LineKind, file string) bool {
	if v.layout == LayoutSideBySide {
		r := v.rows[i]
		if kind == diff.LineRemoved {
			return r.Left.Kind == kind && r.Left.File == file
		}
		return r.Right.Kind == kind && v.indexFile(i) == file
	}
	ln := v.lines[i]
	return ln.Kind == kind && ln.File == file
}

// findLocation returns the display index of loc in the active layout,
// falling back to the clamped current index when the location is gone.
func (v View) findLocation(loc location) int {
	n := v.length()
	if n == 0 {
		return 0
	}

	if loc.key != diff.NoKey {
		for i := 0; i < n; i++ {
			if v.indexKey(i) == loc.key && v.indexFile(i) == loc.file {
				return i
			}
		}
		return min(v.selected, n-1)
	}

	ord := 0
	for i := 0; i < n; i++ {
		if v.matchKeyless(i, loc.kind, loc.file) {
			if ord == loc.ordinal {
				return i
			}
			ord++
		}
	}
	return min(v.selected, n-1)
}
