package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/agent-era/devteam-sub000/internal/devteam"
)

// WorktreeCompleter returns a ShellCompleteFunc that suggests the
// repository's branch names as positional completions. Set this as the
// ShellComplete field on any cli.Command that accepts a worktree argument.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func WorktreeCompleter(app *devteam.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		wts, err := app.Worktrees(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, wt := range wts {
			if wt.Branch == "" {
				continue
			}
			_, _ = fmt.Fprintln(w, wt.Branch)
		}
	}
}
