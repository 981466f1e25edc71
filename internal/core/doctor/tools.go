package doctor

import (
	"context"
	"os/exec"
	"strings"

	"github.com/agent-era/devteam-sub000/pkg/executil"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies the configured git and tmux binaries resolve and
// reports their versions.
type ToolsCheck struct {
	gitPath  string
	tmuxPath string
	exec     executil.Executor
}

// NewToolsCheck creates a tools check for the configured binary paths.
func NewToolsCheck(gitPath, tmuxPath string, exec executil.Executor) *ToolsCheck {
	return &ToolsCheck{gitPath: gitPath, tmuxPath: tmuxPath, exec: exec}
}

func (c *ToolsCheck) Name() string {
	return "Tools"
}

func (c *ToolsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	// git is required; tmux the dashboard can limp without.
	result.Items = append(result.Items, c.probe(ctx, "git", c.gitPath, "--version", StatusFail))
	result.Items = append(result.Items, c.probe(ctx, "tmux", c.tmuxPath, "-V", StatusWarn))

	return result
}

// probe resolves bin on PATH and asks it for its version. missing is the
// status reported when the binary cannot be found.
func (c *ToolsCheck) probe(ctx context.Context, label, bin, versionFlag string, missing Status) CheckItem {
	if _, err := lookPathFunc(bin); err != nil {
		return CheckItem{Label: label, Status: missing, Detail: "not found on PATH"}
	}

	out, err := c.exec.Run(ctx, bin, versionFlag)
	if err != nil {
		return CheckItem{Label: label, Status: StatusWarn, Detail: "found, but version probe failed"}
	}

	return CheckItem{Label: label, Status: StatusPass, Detail: strings.TrimSpace(string(out))}
}
