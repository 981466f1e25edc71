package review

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
	"github.com/agent-era/devteam-sub000/internal/core/logging"
	"github.com/agent-era/devteam-sub000/internal/core/tmux"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Multiplexer is the terminal-multiplexer surface delivery depends on.
type Multiplexer interface {
	SessionExists(ctx context.Context, name string) bool
	CreateSession(ctx context.Context, name, dir string) error
	LaunchWithArgs(ctx context.Context, name, cmd string, args ...string) error
	SendLiteralKeys(ctx context.Context, name, text string) error
	SendKeyCombo(ctx context.Context, name string, keys ...string) error
	CapturePane(ctx context.Context, name string, scrollback int) (string, error)
}

// Outcome summarizes what a delivery attempt did.
type Outcome string

const (
	// OutcomeNothing means the queue was empty; no multiplexer call was made.
	OutcomeNothing Outcome = "nothing"
	// OutcomeLaunched means a fresh agent process received the prompt at startup.
	OutcomeLaunched Outcome = "launched"
	// OutcomeSent means the prompt was injected and its echo verified.
	OutcomeSent Outcome = "sent"
	// OutcomeWaiting means the agent needs attention before it can take input;
	// the queue is untouched.
	OutcomeWaiting Outcome = "waiting"
	// OutcomeFailed means a multiplexer call failed; the queue is untouched.
	OutcomeFailed Outcome = "failed"
)

// Result reports a delivery attempt. Session lets the caller offer to open
// the session on waiting or failed outcomes.
type Result struct {
	Outcome Outcome
	Session string
	Err     error
}

// Target names the session a delivery goes to and the worktree behind it.
type Target struct {
	Session string
	Dir     string
}

// Options tune a Deliverer. The zero value picks the defaults.
type Options struct {
	// Settle separates injection from verification. Fixed and sub-second;
	// a heuristic, not a synchronization primitive.
	Settle time.Duration
	// Capture is the scrollback depth for status and verification captures.
	Capture int
	// KeyNewline inserts a line break without submitting.
	KeyNewline string
	// KeySubmit submits the composed input.
	KeySubmit string
	// LookPath resolves the agent binary. Tests override it.
	LookPath func(string) (string, error)
}

const (
	defaultSettle = 500 * time.Millisecond
	maxSettle     = 900 * time.Millisecond
)

// Deliverer pushes review prompts into an agent session, choosing a
// strategy from the session's state. Callers must not start a second
// delivery while one is in flight: concurrent deliveries would interleave
// keystrokes into the same pane.
type Deliverer struct {
	mux        Multiplexer
	profile    agent.Profile
	settle     time.Duration
	capture    int
	keyNewline string
	keySubmit  string
	lookPath   func(string) (string, error)
	log        zerolog.Logger
}

// NewDeliverer creates a Deliverer for one agent profile.
func NewDeliverer(mux Multiplexer, profile agent.Profile, opts Options) *Deliverer {
	d := &Deliverer{
		mux:        mux,
		profile:    profile,
		settle:     opts.Settle,
		capture:    opts.Capture,
		keyNewline: opts.KeyNewline,
		keySubmit:  opts.KeySubmit,
		lookPath:   opts.LookPath,
		log:        logging.Component("review.delivery"),
	}
	if d.settle == 0 {
		d.settle = defaultSettle
	}
	if d.settle > maxSettle {
		d.settle = maxSettle
	}
	if d.keyNewline == "" {
		d.keyNewline = tmux.KeyNewline
	}
	if d.keySubmit == "" {
		d.keySubmit = tmux.KeySubmit
	}
	if d.lookPath == nil {
		d.lookPath = exec.LookPath
	}
	return d
}

// Deliver sends every queued comment to the target's agent session.
// The queue is cleared only when the prompt demonstrably reached an agent:
// handed to a fresh process as its argument, or injected and verified.
func (d *Deliverer) Deliver(ctx context.Context, store *Store, target Target) Result {
	comments := store.All()
	if len(comments) == 0 {
		return Result{Outcome: OutcomeNothing, Session: target.Session}
	}

	res := d.deliver(ctx, FormatPrompt(comments), target)
	if res.Outcome == OutcomeLaunched || res.Outcome == OutcomeSent {
		store.Clear()
	}
	return res
}

// SendText pushes ad hoc text through the same state machine, with no
// queue involved.
func (d *Deliverer) SendText(ctx context.Context, text string, target Target) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Outcome: OutcomeNothing, Session: target.Session}
	}
	return d.deliver(ctx, text, target)
}

func (d *Deliverer) deliver(ctx context.Context, text string, target Target) Result {
	text = strings.TrimRight(text, "\n")

	// One ID per attempt ties the injection, settle and verification log
	// lines together; session and agent ride the context so the global
	// ContextHook stamps them on every line.
	ctx = logging.WithSession(ctx, target.Session)
	ctx = logging.WithAgent(ctx, d.profile.Kind())
	dlog := d.log.With().
		Ctx(ctx).
		Str("delivery_id", uuid.NewString()).
		Logger()

	if !d.mux.SessionExists(ctx, target.Session) {
		return d.launchFresh(ctx, dlog, text, target)
	}

	pane, err := d.mux.CapturePane(ctx, target.Session, d.capture)
	if err != nil {
		return d.fail(dlog, target, "capture session pane", err)
	}

	switch d.status(pane) {
	case agent.StatusNotRunning:
		return d.launchInShell(ctx, dlog, text, target)
	case agent.StatusWaiting:
		dlog.Info().Msg("agent waiting on user, delivery skipped")
		return Result{Outcome: OutcomeWaiting, Session: target.Session}
	default:
		return d.inject(ctx, dlog, text, target)
	}
}

// launchFresh creates the session and starts the agent with the prompt as
// a real argv entry, so no keystroke injection can race the startup.
func (d *Deliverer) launchFresh(ctx context.Context, dlog zerolog.Logger, text string, target Target) Result {
	if err := d.mux.CreateSession(ctx, target.Session, target.Dir); err != nil {
		return d.fail(dlog, target, "create session", err)
	}

	bin, args := d.profile.LaunchCommand()
	if _, err := d.lookPath(bin); err != nil {
		return d.fail(dlog, target, "locate agent binary", err)
	}
	if err := d.mux.LaunchWithArgs(ctx, target.Session, bin, append(args, text)...); err != nil {
		return d.fail(dlog, target, "launch agent", err)
	}

	dlog.Info().Msg("agent launched with prompt")
	return Result{Outcome: OutcomeLaunched, Session: target.Session}
}

// launchInShell restarts an exited agent from the session's live shell,
// passing the prompt as a quoted argument on one command line.
func (d *Deliverer) launchInShell(ctx context.Context, dlog zerolog.Logger, text string, target Target) Result {
	bin, args := d.profile.LaunchCommand()
	line := shellCommand(bin, args, text)
	if err := d.mux.SendLiteralKeys(ctx, target.Session, line); err != nil {
		return d.fail(dlog, target, "type launch command", err)
	}
	if err := d.mux.SendKeyCombo(ctx, target.Session, d.keySubmit); err != nil {
		return d.fail(dlog, target, "run launch command", err)
	}

	dlog.Info().Msg("agent restarted with prompt")
	return Result{Outcome: OutcomeLaunched, Session: target.Session}
}

// inject types the prompt into a live agent line by line, submits it, and
// verifies the echo after the settle delay.
func (d *Deliverer) inject(ctx context.Context, dlog zerolog.Logger, text string, target Target) Result {
	for line := range strings.SplitSeq(text, "\n") {
		if line != "" {
			if err := d.mux.SendLiteralKeys(ctx, target.Session, line); err != nil {
				return d.fail(dlog, target, "inject prompt line", err)
			}
		}
		if err := d.mux.SendKeyCombo(ctx, target.Session, d.keyNewline); err != nil {
			return d.fail(dlog, target, "insert newline", err)
		}
	}
	if err := d.mux.SendKeyCombo(ctx, target.Session, d.keySubmit); err != nil {
		return d.fail(dlog, target, "submit prompt", err)
	}

	d.wait(ctx)

	pane, err := d.mux.CapturePane(ctx, target.Session, d.capture)
	if err != nil {
		return d.fail(dlog, target, "verify delivery", err)
	}
	if !echoVerified(text, pane) {
		// The agent likely flipped to waiting mid-injection and swallowed
		// the keystrokes. Keep the queue so nothing is lost.
		dlog.Warn().Msg("prompt echo not found, treating as waiting")
		return Result{Outcome: OutcomeWaiting, Session: target.Session}
	}

	return Result{Outcome: OutcomeSent, Session: target.Session}
}

func (d *Deliverer) status(pane string) agent.Status {
	if !d.profile.Matches(pane) {
		return agent.StatusNotRunning
	}
	return d.profile.Classify(pane)
}

func (d *Deliverer) fail(dlog zerolog.Logger, target Target, op string, err error) Result {
	dlog.Error().Err(err).Msg(op + " failed")
	return Result{Outcome: OutcomeFailed, Session: target.Session, Err: fmt.Errorf("%s: %w", op, err)}
}

func (d *Deliverer) wait(ctx context.Context) {
	if d.settle <= 0 {
		return
	}
	t := time.NewTimer(d.settle)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// echoVerified reports whether at least one of the last two non-empty
// prompt lines appears verbatim in the re-captured pane. Pane captures
// join wrapped lines, so long lines still match whole.
func echoVerified(text, pane string) bool {
	lines := strings.Split(text, "\n")
	candidates := make([]string, 0, 2)
	for i := len(lines) - 1; i >= 0 && len(candidates) < 2; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			candidates = append(candidates, lines[i])
		}
	}
	for _, c := range candidates {
		if strings.Contains(pane, c) {
			return true
		}
	}
	return false
}

// shellCommand builds the single shell line that restarts the agent with
// the prompt as its final argument.
func shellCommand(bin string, args []string, prompt string) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, shellQuote(bin))
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	parts = append(parts, shellQuote(prompt))
	return strings.Join(parts, " ")
}

// shellQuote single-quotes s for POSIX shells. Newlines survive inside
// single quotes, so multi-line prompts stay one argument.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
