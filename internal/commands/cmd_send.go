package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/agent-era/devteam-sub000/internal/core/review"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/devteam"
)

type SendCmd struct {
	flags *Flags
	app   *devteam.App

	// Command-specific flags
	agent string
	file  string
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *Flags, app *devteam.App) *SendCmd {
	return &SendCmd{flags: flags, app: app}
}

// Register adds the send command to the application
func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Send text to a worktree's agent",
		UsageText: "devteam send <worktree> [text]",
		Description: `Delivers text to the agent session of a worktree, identified by branch
name or checkout path. A dead session or exited agent is restarted with
the text as its prompt; a busy agent gets it typed into its input.

The text can be provided as:
- Command-line arguments after the worktree
- From a file with -f/--file
- From stdin when piped

Examples:
  devteam send feat/parser "run the tests and fix the failures"
  devteam send ../api-wt/feat-parser -f notes.md
  git diff | devteam send feat/parser`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "agent",
				Aliases:     []string{"a"},
				Usage:       "agent to deliver to (defaults to the configured agent)",
				Destination: &cmd.agent,
			},
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "read text from file",
				Destination: &cmd.file,
			},
		},
		ShellComplete: WorktreeCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("worktree argument required (branch or path)")
	}

	text, err := cmd.readText(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to send")
	}

	wt, err := cmd.app.FindWorktree(ctx, key)
	if err != nil {
		return err
	}

	kind := cmd.agent
	if kind == "" {
		kind = cmd.app.Config.Agents.Default
	}
	profile, err := cmd.app.Profile(kind)
	if err != nil {
		return err
	}

	res := cmd.app.NewDeliverer(profile).SendText(ctx, text, review.Target{
		Session: wt.Session,
		Dir:     wt.Path,
	})

	out := c.Root().Writer
	switch res.Outcome {
	case review.OutcomeLaunched:
		fmt.Fprintf(out, "%s Launched %s in session %s with the text as its prompt\n",
			styles.SuccessStyle.Render("✔"), kind, res.Session)
	case review.OutcomeSent:
		fmt.Fprintf(out, "%s Sent to session %s\n", styles.SuccessStyle.Render("✔"), res.Session)
	case review.OutcomeWaiting:
		fmt.Fprintf(os.Stderr, "%s Agent in session %s is waiting for input; nothing was sent\n",
			styles.WarningStyle.Render("●"), res.Session)
		fmt.Fprintf(os.Stderr, "  Attach with: tmux attach -t %s\n", res.Session)
		return cli.Exit("", 1)
	case review.OutcomeFailed:
		return res.Err
	}

	return nil
}

// readText resolves the text to deliver: trailing args, --file, then stdin.
func (cmd *SendCmd) readText(c *cli.Command) (string, error) {
	if c.NArg() > 1 {
		return strings.Join(c.Args().Slice()[1:], " "), nil
	}

	if cmd.file != "" {
		data, err := os.ReadFile(cmd.file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no text provided and stdin is a terminal")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
