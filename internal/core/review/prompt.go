package review

import (
	"fmt"
	"strings"
)

// FormatPrompt renders queued comments as the message handed to the agent.
// Format:
//
//	internal/server/routes.go:
//	Line 42: 	r.Get("/health", handleHealth)
//	Comment: this route needs auth middleware
//	Line content: 	return nil
//	Comment: swallowed error
//
//	README.md:
//	File: README.md
//	Comment: mention the new flag
//
// Comments group by file in first-seen queue order. A comment with a
// stable index renders "Line N" counting from 1; one whose line has no
// index falls back to "Line content"; a file-level comment shows the path
// instead of a line.
func FormatPrompt(comments []Comment) string {
	if len(comments) == 0 {
		return ""
	}

	var files []string
	byFile := make(map[string][]Comment)
	for _, c := range comments {
		if _, ok := byFile[c.File]; !ok {
			files = append(files, c.File)
		}
		byFile[c.File] = append(byFile[c.File], c)
	}

	var b strings.Builder
	for i, file := range files {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s:\n", file))
		for _, c := range byFile[file] {
			switch {
			case c.FileLevel:
				b.WriteString(fmt.Sprintf("File: %s\n", c.File))
			case c.LineIndex != FileLevelIndex:
				b.WriteString(fmt.Sprintf("Line %d: %s\n", c.LineIndex+1, c.LineText))
			default:
				b.WriteString(fmt.Sprintf("Line content: %s\n", c.LineText))
			}
			b.WriteString(fmt.Sprintf("Comment: %s\n", c.Body))
		}
	}
	return b.String()
}
