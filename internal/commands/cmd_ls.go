package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
	"github.com/agent-era/devteam-sub000/internal/devteam"
	"github.com/agent-era/devteam-sub000/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *devteam.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *devteam.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the repository's worktrees",
		UsageText: "devteam ls [--json]",
		Description: `Displays a table of worktrees with their diff stats, agent status,
session name, and path.

Use --json for machine-readable output, one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	wts, err := cmd.app.Worktrees(ctx)
	if err != nil {
		return fmt.Errorf("list worktrees: %w", err)
	}

	if len(wts) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No worktrees found\n")
		}
		return nil
	}

	infos := make([]worktreeInfo, 0, len(wts))
	for _, wt := range wts {
		infos = append(infos, cmd.buildWorktreeInfo(ctx, wt))
	}

	// Sort by branch name
	slices.SortFunc(infos, func(a, b worktreeInfo) int {
		return strings.Compare(a.Branch, b.Branch)
	})

	out := c.Root().Writer

	// JSON output mode
	if cmd.jsonOutput {
		for _, info := range infos {
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode worktree: %w", err)
			}
		}
		return nil
	}

	// Aligned table with a header on a terminal, bare tab-separated rows
	// when piped.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		writeTable(out, infos)
	} else {
		writeRows(out, infos)
	}

	return nil
}

func writeTable(out io.Writer, infos []worktreeInfo) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "BRANCH\tDIFF\tAGENT\tSESSION\tPATH")

	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			info.Branch, diffColumn(info), info.Agent, info.Session, info.Path)
	}

	_ = w.Flush()
}

func writeRows(out io.Writer, infos []worktreeInfo) {
	for _, info := range infos {
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
			info.Branch, diffColumn(info), info.Agent, info.Session, info.Path)
	}
}

func diffColumn(info worktreeInfo) string {
	if info.Clean {
		return "clean"
	}
	return fmt.Sprintf("+%d -%d", info.Additions, info.Deletions)
}

// worktreeInfo is the JSON output format for devteam ls --json.
type worktreeInfo struct {
	Branch    string `json:"branch"`
	Head      string `json:"head,omitempty"`
	Path      string `json:"path"`
	Session   string `json:"session"`
	Live      bool   `json:"live"`
	Agent     string `json:"agent"`
	Clean     bool   `json:"clean"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

func (cmd *LsCmd) buildWorktreeInfo(ctx context.Context, wt devteam.Worktree) worktreeInfo {
	info := worktreeInfo{
		Branch:  wt.Name(),
		Head:    wt.Head,
		Path:    wt.Path,
		Session: wt.Session,
		Live:    wt.Live,
		Agent:   "-",
	}
	if info.Branch == "" {
		info.Branch = "-"
	}

	// Classification shells out to tmux, so dead sessions are skipped.
	if wt.Live {
		if status := cmd.app.AgentStatus(ctx, wt.Session); status != agent.StatusNotRunning {
			info.Agent = string(status)
		}
	}

	clean, err := cmd.app.Git.IsClean(ctx, wt.Path)
	if err != nil {
		return info
	}
	info.Clean = clean

	if additions, deletions, err := cmd.app.Git.DiffStats(ctx, wt.Path); err == nil {
		info.Additions = additions
		info.Deletions = deletions
	}

	return info
}
