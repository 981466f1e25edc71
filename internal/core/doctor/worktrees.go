package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/agent-era/devteam-sub000/internal/core/git"
)

// WorktreeSource is the git surface the worktrees check needs.
type WorktreeSource interface {
	Worktrees(ctx context.Context, dir string) ([]git.Worktree, error)
	PruneWorktrees(ctx context.Context, dir string) error
}

// WorktreesCheck verifies the repository is reachable and that every
// registered worktree still exists on disk. With autofix, stale
// registrations are pruned.
type WorktreesCheck struct {
	git     WorktreeSource
	repoDir string
	autofix bool
}

// NewWorktreesCheck creates a worktrees check rooted at repoDir.
func NewWorktreesCheck(g WorktreeSource, repoDir string, autofix bool) *WorktreesCheck {
	return &WorktreesCheck{git: g, repoDir: repoDir, autofix: autofix}
}

func (c *WorktreesCheck) Name() string {
	return "Worktrees"
}

func (c *WorktreesCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	wts, err := c.git.Worktrees(ctx, c.repoDir)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "repository",
			Status: StatusFail,
			Detail: fmt.Sprintf("not a usable git repository: %v", err),
		})
		return result
	}
	result.Items = append(result.Items, CheckItem{
		Label:  "repository",
		Status: StatusPass,
		Detail: c.repoDir,
	})

	var stale []git.Worktree
	for _, wt := range wts {
		if _, err := os.Stat(wt.Path); os.IsNotExist(err) {
			stale = append(stale, wt)
		}
	}

	if len(stale) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "checkouts",
			Status: StatusPass,
			Detail: fmt.Sprintf("%d worktree(s)", len(wts)),
		})
		return result
	}

	if c.autofix {
		if err := c.git.PruneWorktrees(ctx, c.repoDir); err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  "checkouts",
				Status: StatusFail,
				Detail: fmt.Sprintf("prune failed: %v", err),
			})
			return result
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "checkouts",
			Status: StatusPass,
			Detail: fmt.Sprintf("pruned %d stale registration(s)", len(stale)),
		})
		return result
	}

	for _, wt := range stale {
		result.Items = append(result.Items, CheckItem{
			Label:   wt.Path,
			Status:  StatusWarn,
			Detail:  "registered worktree missing on disk",
			Fixable: true,
		})
	}

	return result
}
