// Command docgen generates CLI reference documentation from the devteam
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/agent-era/devteam-sub000/internal/commands"
	"github.com/agent-era/devteam-sub000/internal/devteam"
)

func main() {
	flags := &commands.Flags{}
	app := &devteam.App{}

	root := &cli.Command{
		Name:      "devteam",
		Usage:     "Run parallel AI coding agents in git worktrees",
		UsageText: "devteam [global options] command [command options]",
		Description: `Devteam runs one AI coding agent per git worktree, each inside its own
tmux session, with a dashboard for watching their status, reviewing
their diffs, and sending review comments back to them.

Run 'devteam' with no arguments to open the dashboard.
Run 'devteam new' to create a worktree and start an agent in it.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("DEVTEAM_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/devteam.log)",
				Sources: cli.EnvVars("DEVTEAM_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("DEVTEAM_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("DEVTEAM_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	root = commands.NewTuiCmd(flags, app).Register(root)
	root = commands.NewNewCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewSendCmd(flags, app).Register(root)
	root = commands.NewRmCmd(flags, app).Register(root)
	root = commands.NewDoctorCmd(flags, app).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
