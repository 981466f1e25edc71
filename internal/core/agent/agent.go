// Package agent describes the coding-agent CLIs that run inside worktree
// sessions: how each tool is launched and how its terminal output maps to
// a session status.
package agent

import "sync"

// Status classifies what an agent pane is doing.
type Status string

const (
	// StatusNotRunning means the session shell is alive but no known
	// agent signature appears in the pane.
	StatusNotRunning Status = "not_running"
	// StatusIdle means the agent is at its input prompt.
	StatusIdle Status = "idle"
	// StatusWorking means the agent is actively producing output.
	StatusWorking Status = "working"
	// StatusWaiting means the agent is blocked on a user decision.
	StatusWaiting Status = "waiting"
)

// Profile is the capability surface for one supported agent tool.
type Profile interface {
	// Kind is the tool tag used in config and session metadata.
	Kind() string

	// LaunchCommand returns the binary and base arguments that start the
	// tool. Callers may append an initial prompt as a final argument.
	LaunchCommand() (bin string, args []string)

	// Matches reports whether the pane output carries this tool's
	// signature at all.
	Matches(pane string) bool

	// Classify reads pane output and reports the tool's status.
	// Working outranks waiting outranks idle; a matching pane with no
	// explicit marker is idle. Never returns StatusNotRunning — that
	// verdict belongs to the registry, which owns signature matching.
	Classify(pane string) Status
}

// Registry resolves tool-kind tags to profiles.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	order    []string
}

// NewRegistry creates a registry holding the given profiles.
func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range profiles {
		r.Register(p)
	}
	return r
}

// Builtin returns a registry of the supported agent tools.
func Builtin() *Registry {
	return NewRegistry(Claude(), Codex(), Gemini(), Aider())
}

// Register adds or replaces a profile under its kind tag.
func (r *Registry) Register(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.Kind()]; !ok {
		r.order = append(r.order, p.Kind())
	}
	r.profiles[p.Kind()] = p
}

// Get returns the profile registered under kind.
func (r *Registry) Get(kind string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[kind]
	return p, ok
}

// Kinds returns the registered tool kinds in registration order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Classify maps pane output to a status for the given tool kind.
// An unknown kind, or a pane without the tool's signature, is not_running;
// otherwise the profile decides with working > waiting > idle priority.
func (r *Registry) Classify(pane, kind string) Status {
	p, ok := r.Get(kind)
	if !ok || !p.Matches(pane) {
		return StatusNotRunning
	}
	return p.Classify(pane)
}

// DetectKind scans pane output for any registered tool signature and
// returns the first match in registration order.
func (r *Registry) DetectKind(pane string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, kind := range r.order {
		if r.profiles[kind].Matches(pane) {
			return kind, true
		}
	}
	return "", false
}

// WithCommand returns a profile that launches with the given binary and
// args but keeps base's classification behavior. Config command overrides
// go through here.
func WithCommand(base Profile, bin string, args []string) Profile {
	return &commandOverride{Profile: base, bin: bin, args: args}
}

type commandOverride struct {
	Profile
	bin  string
	args []string
}

func (c *commandOverride) LaunchCommand() (string, []string) {
	return c.bin, append([]string(nil), c.args...)
}
