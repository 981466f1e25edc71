package textwrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 0, Width(""))
	assert.Equal(t, 5, Width("hello"))
	assert.Equal(t, 4, Width("漢字"))
	assert.Equal(t, 4, Width("a漢b"))
	// combining acute is zero width
	assert.Equal(t, 1, Width("é"))
}

func TestWrapLine_EmptyInput(t *testing.T) {
	segs := WrapLine("", 10)
	require.Len(t, segs, 1)
	assert.Equal(t, "", segs[0])
}

func TestWrapLine_FitsBudget(t *testing.T) {
	assert.Equal(t, []string{"hello"}, WrapLine("hello", 10))
	assert.Equal(t, []string{"hello"}, WrapLine("hello", 5))
}

func TestWrapLine_SplitsAtBudget(t *testing.T) {
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, WrapLine("abcdefghij", 4))
}

func TestWrapLine_WideGlyphNeverStraddles(t *testing.T) {
	// 漢 is two columns and must not be split across a row boundary.
	assert.Equal(t, []string{"ab", "漢"}, WrapLine("ab漢", 3))
	assert.Equal(t, []string{"a漢", "b漢"}, WrapLine("a漢b漢", 3))
}

func TestWrapLine_ClusterWiderThanBudget(t *testing.T) {
	// A cluster that alone exceeds the budget still gets its own segment.
	assert.Equal(t, []string{"漢", "字"}, WrapLine("漢字", 1))
}

func TestWrapLine_CombiningMarkStaysWithBase(t *testing.T) {
	segs := WrapLine("aéi", 2)
	assert.Equal(t, []string{"aé", "i"}, segs)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hell…", Truncate("hello world", 5))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestTruncate_WideBoundary(t *testing.T) {
	out := Truncate("ab漢字", 4)
	assert.LessOrEqual(t, Width(out), 4)
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestRows(t *testing.T) {
	assert.Equal(t, 1, Rows("anything at all", 4, NoWrap))
	assert.Equal(t, 1, Rows("", 4, Wrap))
	assert.Equal(t, 3, Rows("abcdefghij", 4, Wrap))
}

func TestProperty_WrapIsPureSplit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		budget := rapid.IntRange(1, 60).Draw(rt, "budget")

		segs := WrapLine(s, budget)
		require.NotEmpty(t, segs)
		require.Equal(t, s, strings.Join(segs, ""))
	})
}

func TestProperty_WrapIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		budget := rapid.IntRange(1, 60).Draw(rt, "budget")

		once := WrapLine(s, budget)
		again := WrapLine(strings.Join(once, ""), budget)
		require.Equal(t, once, again)
	})
}

func TestProperty_AsciiSegmentsFitBudget(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[ -~]*`).Draw(rt, "s")
		budget := rapid.IntRange(1, 40).Draw(rt, "budget")

		for _, seg := range WrapLine(s, budget) {
			require.LessOrEqual(t, Width(seg), budget)
		}
	})
}
