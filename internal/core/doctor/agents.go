package doctor

import (
	"context"
	"fmt"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
)

// AgentsCheck verifies the default agent is a known tool and that each
// tool's launch binary resolves on PATH. A missing binary only fails the
// check when the tool is the configured default.
type AgentsCheck struct {
	defaultKind string
	kinds       []string
	resolve     func(kind string) (agent.Profile, error)
}

// NewAgentsCheck creates an agents check. resolve returns the launch
// profile for a kind with config overrides applied.
func NewAgentsCheck(defaultKind string, kinds []string, resolve func(kind string) (agent.Profile, error)) *AgentsCheck {
	return &AgentsCheck{defaultKind: defaultKind, kinds: kinds, resolve: resolve}
}

func (c *AgentsCheck) Name() string {
	return "Agents"
}

func (c *AgentsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := c.resolve(c.defaultKind); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "default",
			Status: StatusFail,
			Detail: fmt.Sprintf("unknown agent %q", c.defaultKind),
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "default",
			Status: StatusPass,
			Detail: c.defaultKind,
		})
	}

	for _, kind := range c.kinds {
		profile, err := c.resolve(kind)
		if err != nil {
			continue
		}

		bin, _ := profile.LaunchCommand()
		if _, err := lookPathFunc(bin); err != nil {
			status := StatusWarn
			if kind == c.defaultKind {
				status = StatusFail
			}
			result.Items = append(result.Items, CheckItem{
				Label:  kind,
				Status: status,
				Detail: fmt.Sprintf("%s not found on PATH", bin),
			})
			continue
		}

		result.Items = append(result.Items, CheckItem{Label: kind, Status: StatusPass, Detail: bin})
	}

	return result
}
