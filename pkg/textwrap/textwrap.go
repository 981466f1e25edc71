// Package textwrap provides display-width aware wrapping, truncation, and
// viewport geometry for terminal rendering.
package textwrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Mode selects how logical lines map to visual rows.
type Mode int

const (
	// NoWrap renders each logical line as a single truncated visual row.
	NoWrap Mode = iota
	// Wrap splits logical lines into as many visual rows as they need.
	Wrap
)

// Width returns the number of terminal columns s occupies. Wide glyphs count
// as two columns, zero-width marks as zero.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// WrapLine splits s into segments that each fit within budget columns,
// breaking at grapheme boundaries. The segments are a pure split of the
// input, so concatenating them reproduces s exactly. Always returns at
// least one segment, even for empty input, so every logical line maps to a
// deterministic visual row count.
func WrapLine(s string, budget int) []string {
	if budget <= 0 || Width(s) <= budget {
		return []string{s}
	}

	var (
		segs []string
		cur  strings.Builder
		curW int
	)
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		// A single cluster wider than the budget still has to land
		// somewhere, so only break when the segment is non-empty.
		if curW+w > budget && cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteString(g.Str())
		curW += w
	}
	return append(segs, cur.String())
}

// Truncate shortens s to fit within budget columns, ending with an ellipsis
// when anything was cut.
func Truncate(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	return runewidth.Truncate(s, budget, "…")
}

// Rows returns how many visual rows one logical line occupies at the given
// column budget. NoWrap lines always occupy exactly one row.
func Rows(line string, budget int, mode Mode) int {
	if mode == NoWrap {
		return 1
	}
	return len(WrapLine(line, budget))
}
