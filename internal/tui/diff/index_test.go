package diff

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestKeys_OnlyCurrentVersionLinesCount(t *testing.T) {
	lines := []Line{
		{Kind: LineFileHeader, Text: "a.go", File: "a.go"},
		{Kind: LineHunkHeader, Text: "@@ -1,3 +1,3 @@ x", File: "a.go"},
		{Kind: LineContext, Text: "one", File: "a.go"},
		{Kind: LineRemoved, Text: "gone", File: "a.go"},
		{Kind: LineAdded, Text: "two", File: "a.go"},
		{Kind: LineContext, Text: "three", File: "a.go"},
	}

	keys := Keys(lines)
	require.Len(t, keys, len(lines))

	assert.Equal(t, NoKey, keys[0])
	assert.Equal(t, NoKey, keys[1])
	assert.Equal(t, 0, keys[2])
	assert.Equal(t, NoKey, keys[3]) // removed lines do not exist on disk
	assert.Equal(t, 1, keys[4])
	assert.Equal(t, 2, keys[5])
}

func TestKeys_PerFileCounters(t *testing.T) {
	lines := []Line{
		{Kind: LineFileHeader, Text: "a.go", File: "a.go"},
		{Kind: LineAdded, Text: "x", File: "a.go"},
		{Kind: LineContext, Text: "y", File: "a.go"},
		{Kind: LineFileHeader, Text: "b.go", File: "b.go"},
		{Kind: LineAdded, Text: "z", File: "b.go"},
	}

	keys := Keys(lines)
	assert.Equal(t, 0, keys[1])
	assert.Equal(t, 1, keys[2])
	assert.Equal(t, 0, keys[4]) // counter restarts per file
}

func TestRowKeys_MatchUnifiedKeys(t *testing.T) {
	diffText := `diff --git a/x.go b/x.go
--- a/x.go
+++ b/x.go
@@ -1,5 +1,5 @@ func x() {
 ctx1
-gone1
-gone2
+here1
 ctx2
diff --git a/y.go b/y.go
--- a/y.go
+++ b/y.go
@@ -1,2 +1,3 @@ func y() {
 keep
+fresh`

	lines := Parse(diffText, nil)
	unifiedKeys := Keys(lines)
	rows := ToSideBySide(lines)
	rowKeys := RowKeys(rows)

	// Collect (file, key) -> text from each layout; a comment keyed in one
	// layout must resolve to the same line text in the other.
	unified := map[string]map[int]string{}
	for i, ln := range lines {
		if unifiedKeys[i] == NoKey {
			continue
		}
		if unified[ln.File] == nil {
			unified[ln.File] = map[int]string{}
		}
		unified[ln.File][unifiedKeys[i]] = ln.Text
	}

	seen := 0
	for i, row := range rows {
		if rowKeys[i] == NoKey {
			continue
		}
		seen++
		require.Contains(t, unified, row.Right.File)
		assert.Equal(t, unified[row.Right.File][rowKeys[i]], row.Right.Text,
			"key %d in %s should name the same line in both layouts", rowKeys[i], row.Right.File)
	}

	keyed := 0
	for _, k := range unifiedKeys {
		if k != NoKey {
			keyed++
		}
	}
	assert.Equal(t, keyed, seen, "both layouts should key the same number of lines")
}

func TestProperty_KeysStableAcrossLayoutToggle(t *testing.T) {
	kinds := []LineKind{LineContext, LineAdded, LineRemoved}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 60).Draw(rt, "lines")
		files := []string{"a.go", "b.go"}

		var lines []Line
		for _, f := range files {
			lines = append(lines, Line{Kind: LineFileHeader, Text: f, File: f})
			for i := 0; i < n; i++ {
				kind := kinds[rapid.IntRange(0, 2).Draw(rt, "kind")]
				lines = append(lines, Line{Kind: kind, Text: fmt.Sprint(f, i), File: f})
			}
		}

		unifiedKeys := Keys(lines)
		unified := map[string]string{}
		for i, ln := range lines {
			if unifiedKeys[i] != NoKey {
				unified[ln.File+"#"+strconv.Itoa(unifiedKeys[i])] = ln.Text
			}
		}

		rows := ToSideBySide(lines)
		rowKeys := RowKeys(rows)
		count := 0
		for i, row := range rows {
			if rowKeys[i] == NoKey {
				continue
			}
			count++
			require.Equal(t, unified[row.Right.File+"#"+strconv.Itoa(rowKeys[i])], row.Right.Text)
		}
		require.Equal(t, len(unified), count)
	})
}
