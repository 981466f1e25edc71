package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/agent-era/devteam-sub000/internal/core/tmux"
)

// Multiplexer is the session surface the sessions check needs.
type Multiplexer interface {
	ListSessions(ctx context.Context) ([]string, error)
	KillSession(ctx context.Context, name string) error
}

// SessionsCheck finds sessions carrying the app's prefix that no longer
// match any worktree. Such sessions are usually left behind when a
// checkout is deleted without the agent being stopped. With autofix they
// are killed.
type SessionsCheck struct {
	mux      Multiplexer
	expected []string
	autofix  bool
}

// NewSessionsCheck creates a sessions check. expected lists the session
// names of the repository's current worktrees.
func NewSessionsCheck(mux Multiplexer, expected []string, autofix bool) *SessionsCheck {
	return &SessionsCheck{mux: mux, expected: expected, autofix: autofix}
}

func (c *SessionsCheck) Name() string {
	return "Sessions"
}

func (c *SessionsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	sessions, err := c.mux.ListSessions(ctx)
	if err != nil {
		// tmux exits non-zero when no server is running; that is a clean
		// state, not a failure.
		result.Items = append(result.Items, CheckItem{
			Label:  "tmux server",
			Status: StatusPass,
			Detail: "not running",
		})
		return result
	}

	known := make(map[string]bool, len(c.expected))
	for _, name := range c.expected {
		known[name] = true
	}

	var orphaned []string
	for _, s := range sessions {
		if strings.HasPrefix(s, tmux.SessionPrefix) && !known[s] {
			orphaned = append(orphaned, s)
		}
	}

	if len(orphaned) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "sessions",
			Status: StatusPass,
			Detail: fmt.Sprintf("%d matched to worktrees", len(sessions)-countUnprefixed(sessions)),
		})
		return result
	}

	for _, name := range orphaned {
		if c.autofix {
			if err := c.mux.KillSession(ctx, name); err != nil {
				result.Items = append(result.Items, CheckItem{
					Label:  name,
					Status: StatusFail,
					Detail: fmt.Sprintf("kill failed: %v", err),
				})
				continue
			}
			result.Items = append(result.Items, CheckItem{
				Label:  name,
				Status: StatusPass,
				Detail: "orphaned session killed",
			})
			continue
		}

		result.Items = append(result.Items, CheckItem{
			Label:   name,
			Status:  StatusWarn,
			Detail:  "session has no matching worktree",
			Fixable: true,
		})
	}

	return result
}

func countUnprefixed(sessions []string) int {
	n := 0
	for _, s := range sessions {
		if !strings.HasPrefix(s, tmux.SessionPrefix) {
			n++
		}
	}
	return n
}
