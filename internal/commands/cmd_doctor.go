package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/agent-era/devteam-sub000/internal/core/doctor"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/devteam"
	"github.com/agent-era/devteam-sub000/pkg/executil"
	"github.com/agent-era/devteam-sub000/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *devteam.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *devteam.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your devteam setup",
		UsageText:   "devteam doctor [options]",
		Description: "Runs diagnostic checks on tools, configuration, agents, and leftover worktree or session state.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (e.g., prune stale worktrees, kill orphaned sessions)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.buildChecks(ctx))

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(results)
}

func (cmd *DoctorCmd) buildChecks(ctx context.Context) []doctor.Check {
	app := cmd.app
	checks := []doctor.Check{
		doctor.NewToolsCheck(app.Config.GitPath, app.Config.TmuxPath, &executil.RealExecutor{}),
		doctor.NewConfigCheck(app.Config, cmd.flags.ConfigPath),
		doctor.NewAgentsCheck(app.Config.Agents.Default, app.Agents.Kinds(), app.Profile),
		doctor.NewWorktreesCheck(app.Git, app.RepoDir, cmd.autofix),
	}

	// Orphan detection compares sessions against the worktree list; when
	// that listing fails the repository check reports it, and autofix must
	// not kill sessions it cannot match.
	if wts, err := app.Worktrees(ctx); err == nil {
		expected := make([]string, 0, len(wts))
		for _, wt := range wts {
			expected = append(expected, wt.Session)
		}
		checks = append(checks, doctor.NewSessionsCheck(app.Mux, expected, cmd.autofix))
	}

	return checks
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputText(results []doctor.Result) error {
	w := os.Stderr
	divider := styles.MutedStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render("Devteam Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TitleStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if !cmd.autofix {
		fixable := doctor.CountFixable(results)
		if fixable > 0 {
			_, _ = fmt.Fprintln(w)
			hint := styles.MutedStyle.Render(fmt.Sprintf("Run 'devteam doctor --autofix' to fix %d issue(s)", fixable))
			_, _ = fmt.Fprintln(w, hint)
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
