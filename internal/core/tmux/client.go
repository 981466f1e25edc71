// Package tmux drives the terminal multiplexer that hosts worktree agent
// sessions.
package tmux

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/agent-era/devteam-sub000/pkg/executil"
	"github.com/rs/zerolog/log"
)

// Key names understood by send-keys.
const (
	// KeyNewline inserts a line break into an agent composer without
	// submitting it.
	KeyNewline = "C-j"
	// KeySubmit submits the composed input.
	KeySubmit = "Enter"
)

// Client runs tmux commands through an injectable executor.
type Client struct {
	tmuxPath string
	exec     executil.Executor
}

// New creates a Client for the given tmux binary. An empty path falls back
// to whatever "tmux" resolves to on PATH.
func New(tmuxPath string, exec executil.Executor) *Client {
	if tmuxPath == "" {
		tmuxPath = "tmux"
	}
	return &Client{tmuxPath: tmuxPath, exec: exec}
}

// ListSessions returns the names of all live sessions. A stopped tmux
// server means no sessions, not an error.
func (c *Client) ListSessions(ctx context.Context) ([]string, error) {
	out, err := c.exec.Run(ctx, c.tmuxPath, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		msg := string(out)
		if strings.Contains(msg, "no server running") || strings.Contains(msg, "no sessions") {
			return nil, nil
		}
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}

	var names []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// SessionExists checks whether a session with exactly the given name exists.
func (c *Client) SessionExists(ctx context.Context, name string) bool {
	_, err := c.exec.Run(ctx, c.tmuxPath, "has-session", "-t", "="+name)
	return err == nil
}

// CreateSession creates a detached session rooted at dir.
func (c *Client) CreateSession(ctx context.Context, name, dir string) error {
	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	log.Debug().Strs("args", args).Msg("executing tmux new-session")
	if _, err := c.exec.Run(ctx, c.tmuxPath, args...); err != nil {
		return fmt.Errorf("tmux new-session: %w", err)
	}
	return nil
}

// LaunchWithArgs replaces the session's pane process with cmd and args.
// respawn-pane -k kills whatever is running and starts the new command
// atomically, so arguments reach the process as real argv entries with no
// shell quoting and no input-injection race.
func (c *Client) LaunchWithArgs(ctx context.Context, name, cmd string, args ...string) error {
	tmuxArgs := append([]string{"respawn-pane", "-k", "-t", name, "--", cmd}, args...)
	log.Debug().Str("session", name).Str("cmd", cmd).Msg("executing tmux respawn-pane")
	if _, err := c.exec.Run(ctx, c.tmuxPath, tmuxArgs...); err != nil {
		return fmt.Errorf("tmux respawn-pane: %w", err)
	}
	return nil
}

// SendLiteralKeys types text into the session exactly as given, without
// interpreting key names.
func (c *Client) SendLiteralKeys(ctx context.Context, name, text string) error {
	if _, err := c.exec.Run(ctx, c.tmuxPath, "send-keys", "-l", "-t", name, "--", text); err != nil {
		return fmt.Errorf("tmux send-keys: %w", err)
	}
	return nil
}

// SendKeyCombo sends named keys such as Enter or C-j to the session.
func (c *Client) SendKeyCombo(ctx context.Context, name string, keys ...string) error {
	args := append([]string{"send-keys", "-t", name}, keys...)
	if _, err := c.exec.Run(ctx, c.tmuxPath, args...); err != nil {
		return fmt.Errorf("tmux send-keys: %w", err)
	}
	return nil
}

// CapturePane returns the session's visible pane text. A positive
// scrollback extends the capture that many lines into history. -J joins
// wrapped lines back together so pattern matching sees logical lines.
func (c *Client) CapturePane(ctx context.Context, name string, scrollback int) (string, error) {
	args := []string{"capture-pane", "-t", name, "-p", "-J"}
	if scrollback > 0 {
		args = append(args, "-S", fmt.Sprintf("-%d", scrollback))
	}
	out, err := c.exec.Run(ctx, c.tmuxPath, args...)
	if err != nil {
		return "", fmt.Errorf("tmux capture-pane: %w", err)
	}
	return string(out), nil
}

// KillSession tears the session down.
func (c *Client) KillSession(ctx context.Context, name string) error {
	log.Debug().Str("session", name).Msg("executing tmux kill-session")
	if _, err := c.exec.Run(ctx, c.tmuxPath, "kill-session", "-t", "="+name); err != nil {
		return fmt.Errorf("tmux kill-session: %w", err)
	}
	return nil
}

// AttachOrSwitch connects to an existing tmux session.
// Inside tmux it uses switch-client; outside it uses attach-session.
func (c *Client) AttachOrSwitch(ctx context.Context, name string) error {
	if InsideTmux() {
		if _, err := c.exec.Run(ctx, c.tmuxPath, "switch-client", "-t", name); err != nil {
			return fmt.Errorf("tmux switch-client: %w", err)
		}
		return nil
	}

	if _, err := c.exec.Run(ctx, c.tmuxPath, "attach-session", "-t", name); err != nil {
		return fmt.Errorf("tmux attach-session: %w", err)
	}
	return nil
}

// InsideTmux reports whether the current process is running inside tmux.
var InsideTmux = func() bool {
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}
