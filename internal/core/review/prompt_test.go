package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrompt(t *testing.T) {
	t.Run("indexed line counts from one", func(t *testing.T) {
		got := FormatPrompt([]Comment{
			{File: "a.go", LineIndex: 2, LineText: "for {", Body: "tighten this loop"},
		})
		assert.Equal(t, "a.go:\nLine 3: for {\nComment: tighten this loop\n", got)
	})

	t.Run("unindexed line shows content", func(t *testing.T) {
		got := FormatPrompt([]Comment{
			{File: "a.go", LineIndex: FileLevelIndex, LineText: "return nil", Body: "swallowed error"},
		})
		assert.Equal(t, "a.go:\nLine content: return nil\nComment: swallowed error\n", got)
	})

	t.Run("file level shows path", func(t *testing.T) {
		got := FormatPrompt([]Comment{
			{File: "README.md", LineIndex: FileLevelIndex, FileLevel: true, Body: "mention the new flag"},
		})
		assert.Equal(t, "README.md:\nFile: README.md\nComment: mention the new flag\n", got)
	})

	t.Run("groups by file in first seen order", func(t *testing.T) {
		got := FormatPrompt([]Comment{
			{File: "z.go", LineIndex: 0, LineText: "package z", Body: "first file seen"},
			{File: "a.go", LineIndex: 4, LineText: "x := 1", Body: "second file seen"},
			{File: "z.go", LineIndex: 8, LineText: "return", Body: "back to the first"},
		})
		want := "z.go:\n" +
			"Line 1: package z\n" +
			"Comment: first file seen\n" +
			"Line 9: return\n" +
			"Comment: back to the first\n" +
			"\n" +
			"a.go:\n" +
			"Line 5: x := 1\n" +
			"Comment: second file seen\n"
		assert.Equal(t, want, got)
	})

	t.Run("empty queue formats empty", func(t *testing.T) {
		assert.Equal(t, "", FormatPrompt(nil))
	})
}
