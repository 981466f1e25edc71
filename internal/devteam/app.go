// Package devteam wires the application's services together for the CLI
// and TUI layers.
package devteam

import (
	"fmt"
	"time"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
	"github.com/agent-era/devteam-sub000/internal/core/config"
	"github.com/agent-era/devteam-sub000/internal/core/git"
	"github.com/agent-era/devteam-sub000/internal/core/review"
	"github.com/agent-era/devteam-sub000/internal/core/state"
	"github.com/agent-era/devteam-sub000/internal/core/tmux"
	"github.com/agent-era/devteam-sub000/pkg/kv"
)

// App aggregates the services commands and views operate on.
type App struct {
	Config  *config.Config
	Git     git.Git
	Mux     *tmux.Client
	Agents  *agent.Registry
	Reviews *review.Registry
	State   *state.Store

	// RepoDir is the repository the process was started in.
	RepoDir string

	// Statuses holds the last classified agent status per session name.
	// Poll commands write it from their own goroutines.
	Statuses *kv.Store[string, agent.Status]
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, g git.Git, mux *tmux.Client, agents *agent.Registry, repoDir string) *App {
	return &App{
		Config:   cfg,
		Git:      g,
		Mux:      mux,
		Agents:   agents,
		Reviews:  review.NewRegistry(),
		State:    state.NewStore(cfg.StateFile()),
		RepoDir:  repoDir,
		Statuses: kv.New[string, agent.Status](),
	}
}

// Profile returns the launch profile for an agent kind, with any configured
// command override applied.
func (a *App) Profile(kind string) (agent.Profile, error) {
	base, ok := a.Agents.Get(kind)
	if !ok {
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}

	override, ok := a.Config.Agents.Profiles[kind]
	if !ok || (override.Command == "" && len(override.Args) == 0) {
		return base, nil
	}

	bin, args := base.LaunchCommand()
	if override.Command != "" {
		bin = override.Command
	}
	if len(override.Args) > 0 {
		args = override.Args
	}
	return agent.WithCommand(base, bin, args), nil
}

// DefaultProfile returns the profile for the configured default agent.
func (a *App) DefaultProfile() (agent.Profile, error) {
	return a.Profile(a.Config.Agents.Default)
}

// NewDeliverer builds a comment deliverer for the given profile, tuned by
// the review config.
func (a *App) NewDeliverer(profile agent.Profile) *review.Deliverer {
	return review.NewDeliverer(a.Mux, profile, review.Options{
		Settle:  time.Duration(a.Config.Review.SettleDelayMS) * time.Millisecond,
		Capture: a.Config.Review.CaptureLines,
	})
}
