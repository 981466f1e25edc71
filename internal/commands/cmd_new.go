package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/core/validate"
	"github.com/agent-era/devteam-sub000/internal/devteam"
)

// agentNone is the select option that skips launching an agent.
const agentNone = "none"

type NewCmd struct {
	flags *Flags
	app   *devteam.App

	// Command-specific flags
	branch string
	path   string
	agent  string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags, app *devteam.App) *NewCmd {
	return &NewCmd{flags: flags, app: app}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a worktree and start an agent in it",
		UsageText: "devteam new [options]",
		Description: `Creates a git worktree on a new branch and launches the configured
AI agent inside a tmux session rooted at the checkout.

When --branch is omitted, an interactive form prompts for input.

Pass --agent none to create the worktree without starting an agent.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "branch",
				Aliases:     []string{"b"},
				Usage:       "branch to create the worktree on",
				Destination: &cmd.branch,
			},
			&cli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "checkout path (defaults to a sibling <repo>-wt directory)",
				Destination: &cmd.path,
			},
			&cli.StringFlag{
				Name:        "agent",
				Aliases:     []string{"a"},
				Usage:       "agent to launch, or 'none' (defaults to the configured agent)",
				Destination: &cmd.agent,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.agent == "" {
		cmd.agent = cmd.app.Config.Agents.Default
	}

	// Show interactive form if branch not provided via flag
	if cmd.branch == "" {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	// Reject unknown agent kinds before touching the repository.
	if cmd.agent != agentNone {
		if _, err := cmd.app.Profile(cmd.agent); err != nil {
			return err
		}
	}

	path := cmd.path
	if strings.TrimSpace(path) == "" {
		path = devteam.DefaultWorktreePath(cmd.app.RepoDir, cmd.branch)
	}

	wt, err := cmd.app.CreateWorktree(ctx, path, cmd.branch, true)
	if err != nil {
		return fmt.Errorf("create worktree: %w", err)
	}

	out := c.Root().Writer
	fmt.Fprintf(out, "%s Created worktree %s at %s\n", styles.SuccessStyle.Render("✔"), wt.Branch, wt.Path)

	if cmd.agent == agentNone {
		return nil
	}

	if err := cmd.app.SpawnSession(ctx, wt, cmd.agent); err != nil {
		return fmt.Errorf("spawn session: %w", err)
	}

	fmt.Fprintf(out, "%s Started %s in session %s\n", styles.SuccessStyle.Render("✔"), cmd.agent, wt.Session)
	fmt.Fprintf(out, "  Attach with: tmux attach -t %s\n", wt.Session)

	return nil
}

func (cmd *NewCmd) runForm() error {
	pathHint := filepath.Base(cmd.app.RepoDir) + "-wt/<branch>"
	agents := append(cmd.app.Agents.Kinds(), agentNone)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Branch").
				Description("Created at the new checkout").
				Validate(validate.BranchName).
				Value(&cmd.branch),
			huh.NewInput().
				Title("Path").
				Description("Leave empty for the default location").
				Placeholder(pathHint).
				Value(&cmd.path),
			huh.NewSelect[string]().
				Title("Agent").
				Options(huh.NewOptions(agents...)...).
				Value(&cmd.agent),
		),
	).WithTheme(styles.FormTheme()).Run()
}
