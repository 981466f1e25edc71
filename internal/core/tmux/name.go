package tmux

import (
	"path/filepath"
	"regexp"
	"strings"
)

// SessionPrefix namespaces the sessions this tool manages so a shared tmux
// server can be scanned for them without touching the user's own sessions.
const SessionPrefix = "dt-"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SessionName derives the tmux session name for a worktree path.
// "/work/My Feature" -> "dt-my-feature"
func SessionName(worktreePath string) string {
	s := strings.ToLower(strings.TrimSpace(filepath.Base(worktreePath)))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "worktree"
	}
	return SessionPrefix + s
}
