package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterIgnored(t *testing.T) {
	paths := []string{
		"go.sum",
		"internal/app/app.go",
		"dist/bundle.js",
		"web/dist/chunk.js",
		"docs/notes.md",
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "no patterns keeps everything",
			patterns: nil,
			want:     paths,
		},
		{
			name:     "doublestar matches any depth",
			patterns: []string{"**/dist/**"},
			want:     []string{"go.sum", "internal/app/app.go", "docs/notes.md"},
		},
		{
			name:     "multiple patterns",
			patterns: []string{"dist/**", "**/dist/**", "*.sum"},
			want:     []string{"internal/app/app.go", "docs/notes.md"},
		},
		{
			name:     "invalid pattern never matches",
			patterns: []string{"[unclosed"},
			want:     paths,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterIgnored(paths, tt.patterns))
		})
	}
}
