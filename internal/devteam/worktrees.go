package devteam

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
	"github.com/agent-era/devteam-sub000/internal/core/tmux"
	"github.com/agent-era/devteam-sub000/internal/core/validate"
)

// Worktree is one checkout plus the session that may be hosting its agent.
type Worktree struct {
	Path    string
	Branch  string
	Head    string
	Bare    bool
	Session string
	Live    bool
}

// Name returns the display name of the worktree.
func (w Worktree) Name() string {
	if w.Branch != "" {
		return w.Branch
	}
	return w.Head
}

// Worktrees lists the repository's worktrees with their session names and
// whether those sessions currently exist. One list-sessions call covers all
// worktrees.
func (a *App) Worktrees(ctx context.Context) ([]Worktree, error) {
	wts, err := a.Git.Worktrees(ctx, a.RepoDir)
	if err != nil {
		return nil, err
	}

	sessions, err := a.Mux.ListSessions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("list sessions failed, marking all worktrees detached")
	}
	live := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		live[s] = true
	}

	out := make([]Worktree, 0, len(wts))
	for _, wt := range wts {
		name := tmux.SessionName(wt.Path)
		out = append(out, Worktree{
			Path:    wt.Path,
			Branch:  wt.Branch,
			Head:    wt.Head,
			Bare:    wt.Bare,
			Session: name,
			Live:    live[name],
		})
	}
	return out, nil
}

// AgentStatus captures the session pane, classifies the agent inside, and
// records the verdict in the shared status store.
func (a *App) AgentStatus(ctx context.Context, session string) agent.Status {
	status := a.classify(ctx, session)
	a.Statuses.Set(session, status)
	return status
}

func (a *App) classify(ctx context.Context, session string) agent.Status {
	if !a.Mux.SessionExists(ctx, session) {
		return agent.StatusNotRunning
	}

	pane, err := a.Mux.CapturePane(ctx, session, a.Config.Review.CaptureLines)
	if err != nil {
		log.Debug().Err(err).Str("session", session).Msg("capture failed during classify")
		return agent.StatusNotRunning
	}

	kind, ok := a.Agents.DetectKind(pane)
	if !ok {
		return agent.StatusNotRunning
	}
	return a.Agents.Classify(pane, kind)
}

// CreateWorktree adds a worktree for branch under the repository's parent
// directory naming convention: <repo>-wt/<branch-slug>.
func (a *App) CreateWorktree(ctx context.Context, path, branch string, createBranch bool) (Worktree, error) {
	if err := validate.BranchName(branch); err != nil {
		return Worktree{}, err
	}
	if strings.TrimSpace(path) == "" {
		return Worktree{}, fmt.Errorf("path cannot be empty")
	}

	if err := a.Git.AddWorktree(ctx, a.RepoDir, path, branch, createBranch); err != nil {
		return Worktree{}, err
	}

	return Worktree{
		Path:    path,
		Branch:  branch,
		Session: tmux.SessionName(path),
	}, nil
}

var branchSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// DefaultWorktreePath derives where a new worktree for branch goes: a
// sibling "<repo>-wt" directory holding one checkout per branch.
// "/work/api" + "feat/wrap" -> "/work/api-wt/feat-wrap"
func DefaultWorktreePath(repoDir, branch string) string {
	slug := strings.Trim(branchSlugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(branch)), "-"), "-")
	if slug == "" {
		slug = "worktree"
	}
	return filepath.Join(filepath.Dir(repoDir), filepath.Base(repoDir)+"-wt", slug)
}

// FindWorktree resolves a branch name or checkout path to one of the
// repository's worktrees.
func (a *App) FindWorktree(ctx context.Context, key string) (Worktree, error) {
	wts, err := a.Worktrees(ctx)
	if err != nil {
		return Worktree{}, err
	}

	abs, _ := filepath.Abs(key)
	for _, wt := range wts {
		if wt.Branch == key || wt.Path == key || wt.Path == abs {
			return wt, nil
		}
	}
	return Worktree{}, fmt.Errorf("no worktree matches %q", key)
}

// RemoveWorktree tears a worktree down: its agent session first, then the
// checkout, then the comment queue that referenced it. force discards
// uncommitted changes.
func (a *App) RemoveWorktree(ctx context.Context, wt Worktree, force bool) error {
	if wt.Path == a.RepoDir {
		return fmt.Errorf("refusing to remove the main checkout at %s", wt.Path)
	}

	if a.Mux.SessionExists(ctx, wt.Session) {
		if err := a.Mux.KillSession(ctx, wt.Session); err != nil {
			return fmt.Errorf("kill session %s: %w", wt.Session, err)
		}
	}

	if err := a.Git.RemoveWorktree(ctx, a.RepoDir, wt.Path, force); err != nil {
		return err
	}

	a.Reviews.Remove(wt.Path)
	a.Statuses.Delete(wt.Session)

	log.Info().Str("worktree", wt.Path).Str("session", wt.Session).Msg("worktree removed")
	return nil
}

// SpawnSession creates the worktree's session and launches the configured
// agent in it.
func (a *App) SpawnSession(ctx context.Context, wt Worktree, kind string) error {
	profile, err := a.Profile(kind)
	if err != nil {
		return err
	}

	if !a.Mux.SessionExists(ctx, wt.Session) {
		if err := a.Mux.CreateSession(ctx, wt.Session, wt.Path); err != nil {
			return err
		}
	}

	bin, args := profile.LaunchCommand()
	if err := a.Mux.LaunchWithArgs(ctx, wt.Session, bin, args...); err != nil {
		return err
	}

	log.Info().Str("session", wt.Session).Str("agent", profile.Kind()).Msg("agent session spawned")
	return nil
}
