// Package review implements the diff review screen: a scrollable diff of a
// worktree with line comments that can be delivered to the agent session
// running in that worktree.
//
// # Coordinate Systems
//
// The screen works in three coordinate spaces:
//
//  1. Display indexes: positions in the flat diff sequence currently shown,
//     []diff.Line in unified layout or []diff.Row in side-by-side. The
//     selection cursor is a display index.
//  2. Comment keys: per-file positions of lines in the current file
//     version, assigned by diff.Keys/diff.RowKeys. Comments are stored
//     under (file, key) so they survive layout toggles and diff reloads;
//     lines without a stable key (removed lines, headers) take comments at
//     the file level instead.
//  3. Visual rows: terminal rows after wrapping. Scrolling runs in visual
//     rows; pkg/textwrap reconciles them with display indexes, and this
//     package never does that math itself.
//
// In side-by-side layout each display index carries a geometry line, the
// taller of its two cells, so the shared textwrap helpers measure the row
// height without knowing about the split.
package review
