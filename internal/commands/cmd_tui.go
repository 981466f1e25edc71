package commands

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/agent-era/devteam-sub000/internal/devteam"
	"github.com/agent-era/devteam-sub000/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *devteam.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *devteam.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "tui",
		Usage:       "Open the worktree dashboard",
		UsageText:   "devteam tui",
		Description: "Opens the interactive dashboard. Running 'devteam' with no arguments does the same.",
		Action:      cmd.Run,
	})
	return app
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	if os.Getenv("TMUX") == "" {
		// Outside tmux, attaching to a session suspends the dashboard
		// until the user detaches. Worth a note before the screen flips.
		fmt.Fprintln(os.Stderr, "Note: not inside tmux; attaching to a session will leave the dashboard until you detach.")
	}

	m := tui.New(cmd.app)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
