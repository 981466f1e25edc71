package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/devteam"
)

type RmCmd struct {
	flags *Flags
	app   *devteam.App

	// Command-specific flags
	force bool
	yes   bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *devteam.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Remove a worktree and its agent session",
		UsageText: "devteam rm [--force] <worktree>",
		Description: `Kills the worktree's agent session, removes the checkout, and drops any
queued review comments for it. The branch itself is kept.

Git refuses to remove a checkout with uncommitted changes unless --force
is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "discard uncommitted changes in the checkout",
				Destination: &cmd.force,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		ShellComplete: WorktreeCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("worktree argument required (branch or path)")
	}

	wt, err := cmd.app.FindWorktree(ctx, key)
	if err != nil {
		return err
	}

	if !cmd.yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Remove worktree " + wt.Name() + "?").
			Description(wt.Path + "\nThe agent session will be killed.").
			Value(&confirmed).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	if err := cmd.app.RemoveWorktree(ctx, wt, cmd.force); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "%s Removed worktree %s\n", styles.SuccessStyle.Render("✔"), wt.Path)

	return nil
}
