package diff

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestToSideBySide_MirrorsHeadersAndContext(t *testing.T) {
	lines := []Line{
		{Kind: LineFileHeader, Text: "a.go", File: "a.go"},
		{Kind: LineHunkHeader, Text: "@@ -1,2 +1,2 @@ func a() {", File: "a.go"},
		{Kind: LineContext, Text: "same", File: "a.go"},
	}

	rows := ToSideBySide(lines)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, row.Left, row.Right, "row %d should mirror", i)
		assert.Equal(t, lines[i].Text, row.Left.Text)
	}
}

func TestToSideBySide_ZipsRemovedWithAdded(t *testing.T) {
	lines := []Line{
		{Kind: LineRemoved, Text: "old1", File: "a.go"},
		{Kind: LineRemoved, Text: "old2", File: "a.go"},
		{Kind: LineAdded, Text: "new1", File: "a.go"},
	}

	rows := ToSideBySide(lines)
	require.Len(t, rows, 2)

	assert.Equal(t, "old1", rows[0].Left.Text)
	assert.Equal(t, "new1", rows[0].Right.Text)

	assert.Equal(t, "old2", rows[1].Left.Text)
	assert.Equal(t, LineEmpty, rows[1].Right.Kind)
	// Padding cells keep the file tag so comments stay addressable.
	assert.Equal(t, "a.go", rows[1].Right.File)
}

func TestToSideBySide_AddedRunWithoutRemoved(t *testing.T) {
	lines := []Line{
		{Kind: LineContext, Text: "ctx", File: "a.go"},
		{Kind: LineAdded, Text: "new1", File: "a.go"},
		{Kind: LineAdded, Text: "new2", File: "a.go"},
	}

	rows := ToSideBySide(lines)
	require.Len(t, rows, 3)

	assert.Equal(t, LineEmpty, rows[1].Left.Kind)
	assert.Equal(t, "new1", rows[1].Right.Text)
	assert.Equal(t, LineEmpty, rows[2].Left.Kind)
	assert.Equal(t, "new2", rows[2].Right.Text)
}

func TestToSideBySide_PairsPerContiguousRun(t *testing.T) {
	// removed, added, added, removed: the trailing removed line starts its
	// own run and must not be zipped against the earlier added run.
	lines := []Line{
		{Kind: LineRemoved, Text: "a", File: "f.go"},
		{Kind: LineAdded, Text: "b", File: "f.go"},
		{Kind: LineAdded, Text: "c", File: "f.go"},
		{Kind: LineRemoved, Text: "d", File: "f.go"},
	}

	rows := ToSideBySide(lines)
	require.Len(t, rows, 3)

	assert.Equal(t, "a", rows[0].Left.Text)
	assert.Equal(t, "b", rows[0].Right.Text)

	assert.Equal(t, LineEmpty, rows[1].Left.Kind)
	assert.Equal(t, "c", rows[1].Right.Text)

	assert.Equal(t, "d", rows[2].Left.Text)
	assert.Equal(t, LineEmpty, rows[2].Right.Kind)
}

func TestToSideBySide_RowIndexMonotonic(t *testing.T) {
	lines := []Line{
		{Kind: LineFileHeader, Text: "a.go", File: "a.go"},
		{Kind: LineRemoved, Text: "x", File: "a.go"},
		{Kind: LineAdded, Text: "y", File: "a.go"},
		{Kind: LineContext, Text: "z", File: "a.go"},
	}

	rows := ToSideBySide(lines)
	for i, row := range rows {
		assert.Equal(t, i, row.RowIndex)
	}
}

func TestProperty_RunZipRowCounts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rapid.IntRange(0, 12).Draw(rt, "removed")
		a := rapid.IntRange(0, 12).Draw(rt, "added")

		lines := []Line{{Kind: LineContext, Text: "ctx", File: "f.go"}}
		for i := 0; i < r; i++ {
			lines = append(lines, Line{Kind: LineRemoved, Text: fmt.Sprintf("r%d", i), File: "f.go"})
		}
		for i := 0; i < a; i++ {
			lines = append(lines, Line{Kind: LineAdded, Text: fmt.Sprintf("a%d", i), File: "f.go"})
		}

		rows := ToSideBySide(lines)

		maxRun, minRun := r, a
		if a > r {
			maxRun, minRun = a, r
		}
		require.Len(t, rows, 1+maxRun)

		bothSided := 0
		for _, row := range rows[1:] {
			if row.Left.Kind != LineEmpty && row.Right.Kind != LineEmpty {
				bothSided++
			}
		}
		require.Equal(t, minRun, bothSided)
	})
}
