package review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type muxCall struct {
	method string
	args   []string
}

// fakeMux scripts multiplexer behavior and records every call.
type fakeMux struct {
	exists     bool
	captures   []string // successive CapturePane returns, last one repeats
	captureIdx int
	failOn     string // method name that returns an error
	calls      []muxCall
}

func (m *fakeMux) SessionExists(_ context.Context, name string) bool {
	m.calls = append(m.calls, muxCall{"SessionExists", []string{name}})
	return m.exists
}

func (m *fakeMux) CreateSession(_ context.Context, name, dir string) error {
	m.calls = append(m.calls, muxCall{"CreateSession", []string{name, dir}})
	return m.err("CreateSession")
}

func (m *fakeMux) LaunchWithArgs(_ context.Context, name, cmd string, args ...string) error {
	m.calls = append(m.calls, muxCall{"LaunchWithArgs", append([]string{name, cmd}, args...)})
	return m.err("LaunchWithArgs")
}

func (m *fakeMux) SendLiteralKeys(_ context.Context, name, text string) error {
	m.calls = append(m.calls, muxCall{"SendLiteralKeys", []string{name, text}})
	return m.err("SendLiteralKeys")
}

func (m *fakeMux) SendKeyCombo(_ context.Context, name string, keys ...string) error {
	m.calls = append(m.calls, muxCall{"SendKeyCombo", append([]string{name}, keys...)})
	return m.err("SendKeyCombo")
}

func (m *fakeMux) CapturePane(_ context.Context, name string, _ int) (string, error) {
	m.calls = append(m.calls, muxCall{"CapturePane", []string{name}})
	if err := m.err("CapturePane"); err != nil {
		return "", err
	}
	if len(m.captures) == 0 {
		return "", nil
	}
	out := m.captures[min(m.captureIdx, len(m.captures)-1)]
	m.captureIdx++
	return out, nil
}

func (m *fakeMux) err(method string) error {
	if m.failOn == method {
		return errors.New("tmux exploded")
	}
	return nil
}

func (m *fakeMux) methods() []string {
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.method
	}
	return out
}

func (m *fakeMux) countMethod(method string) int {
	n := 0
	for _, c := range m.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

func newTestDeliverer(mux *fakeMux) *Deliverer {
	return NewDeliverer(mux, agent.Claude(), Options{
		Settle:   time.Millisecond,
		LookPath: func(string) (string, error) { return "/usr/local/bin/claude", nil },
	})
}

func oneCommentStore() *Store {
	s := NewStore()
	s.Add(Comment{File: "a.go", LineIndex: 2, LineText: "for {", Body: "tighten this loop"})
	return s
}

var target = Target{Session: "dt-feature", Dir: "/work/feature"}

const (
	idlePane    = "✻ Welcome to Claude Code!\n\n> "
	waitingPane = "claude\nDo you want to make this edit?\n❯ Yes\n  No"
	workingPane = "claude\n✻ Baking… (8s · esc to interrupt)"
	shellPane   = "$ ls\ngo.mod main.go\n$ "
)

func TestDeliverEmptyQueue(t *testing.T) {
	mux := &fakeMux{}
	d := newTestDeliverer(mux)

	res := d.Deliver(context.Background(), NewStore(), target)

	assert.Equal(t, OutcomeNothing, res.Outcome)
	assert.Empty(t, mux.calls)
}

func TestDeliverAbsentSessionLaunchesWithPrompt(t *testing.T) {
	mux := &fakeMux{exists: false}
	d := newTestDeliverer(mux)
	store := oneCommentStore()

	res := d.Deliver(context.Background(), store, target)

	assert.Equal(t, OutcomeLaunched, res.Outcome)
	assert.Equal(t, 0, store.Count())

	require.Equal(t, []string{"SessionExists", "CreateSession", "LaunchWithArgs"}, mux.methods())
	assert.Equal(t, []string{"dt-feature", "/work/feature"}, mux.calls[1].args)
	assert.Equal(t, []string{
		"dt-feature", "claude",
		"a.go:\nLine 3: for {\nComment: tighten this loop",
	}, mux.calls[2].args)
}

func TestDeliverAbsentSessionMissingBinary(t *testing.T) {
	mux := &fakeMux{exists: false}
	d := NewDeliverer(mux, agent.Claude(), Options{
		Settle:   time.Millisecond,
		LookPath: func(string) (string, error) { return "", errors.New("not in PATH") },
	})
	store := oneCommentStore()

	res := d.Deliver(context.Background(), store, target)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, []string{"SessionExists", "CreateSession"}, mux.methods())
}

func TestDeliverNotRunningRestartsAgent(t *testing.T) {
	mux := &fakeMux{exists: true, captures: []string{shellPane}}
	d := newTestDeliverer(mux)
	store := oneCommentStore()

	res := d.Deliver(context.Background(), store, target)

	assert.Equal(t, OutcomeLaunched, res.Outcome)
	assert.Equal(t, 0, store.Count())

	require.Equal(t, []string{"SessionExists", "CapturePane", "SendLiteralKeys", "SendKeyCombo"}, mux.methods())
	line := mux.calls[2].args[1]
	assert.True(t, strings.HasPrefix(line, "'claude' '"), "shell line %q", line)
	assert.Contains(t, line, "Comment: tighten this loop")
	assert.Equal(t, []string{"dt-feature", "Enter"}, mux.calls[3].args)
}

func TestDeliverWaitingLeavesQueue(t *testing.T) {
	mux := &fakeMux{exists: true, captures: []string{waitingPane}}
	d := newTestDeliverer(mux)
	store := oneCommentStore()

	res := d.Deliver(context.Background(), store, target)

	assert.Equal(t, OutcomeWaiting, res.Outcome)
	assert.Equal(t, "dt-feature", res.Session)
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, []string{"SessionExists", "CapturePane"}, mux.methods())
}

func TestDeliverIdleInjectsAndVerifies(t *testing.T) {
	mux := &fakeMux{exists: true, captures: []string{
		idlePane,
		"> a.go:\n> Line 3: for {\n> Comment: tighten this loop\n⠙ thinking",
	}}
	d := newTestDeliverer(mux)
	store := oneCommentStore()

	res := d.Deliver(context.Background(), store, target)

	assert.Equal(t, OutcomeSent, res.Outcome)
	assert.Equal(t, 0, store.Count())

	// Three prompt lines: each typed literally then broken with the
	// no-submit combo, then one submit, then the verification capture.
	require.Equal(t, []string{
		"SessionExists", "CapturePane",
		"SendLiteralKeys", "SendKeyCombo",
		"SendLiteralKeys", "SendKeyCombo",
		"SendLiteralKeys", "SendKeyCombo",
		"SendKeyCombo",
		"CapturePane",
	}, mux.methods())

	assert.Equal(t, []string{"dt-feature", "a.go:"}, mux.calls[2].args)
	assert.Equal(t, []string{"dt-feature", "C-j"}, mux.calls[3].args)
	assert.Equal(t, []string{"dt-feature", "Line 3: for {"}, mux.calls[4].args)
	assert.Equal(t, []string{"dt-feature", "Comment: tighten this loop"}, mux.calls[6].args)
	assert.Equal(t, []string{"dt-feature", "Enter"}, mux.calls[8].args)
}

func TestDeliverWorkingAlsoInjects(t *testing.T) {
	mux := &fakeMux{exists: true, captures: []string{
		workingPane,
		"Comment: tighten this loop",
	}}
	d := newTestDeliverer(mux)
	store := oneCommentStore()

	res := d.Deliver(context.Background(), store, target)

	assert.Equal(t, OutcomeSent, res.Outcome)
	assert.Equal(t, 0, store.Count())
	assert.Equal(t, 3, mux.countMethod("SendLiteralKeys"))
}

func TestDeliverEchoMissingKeepsQueue(t *testing.T) {
	mux := &fakeMux{exists: true, captures: []string{
		idlePane,
		"✻ Baking… (2s · esc to interrupt)",
	}}
	d := newTestDeliverer(mux)
	store := oneCommentStore()

	res := d.Deliver(context.Background(), store, target)

	assert.Equal(t, OutcomeWaiting, res.Outcome)
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, 2, mux.countMethod("CapturePane"))
}

func TestDeliverMuxFailureKeepsQueue(t *testing.T) {
	tests := []struct {
		name   string
		failOn string
	}{
		{"status capture fails", "CapturePane"},
		{"literal keys fail", "SendLiteralKeys"},
		{"key combo fails", "SendKeyCombo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := &fakeMux{exists: true, captures: []string{idlePane}, failOn: tt.failOn}
			d := newTestDeliverer(mux)
			store := oneCommentStore()

			res := d.Deliver(context.Background(), store, target)

			assert.Equal(t, OutcomeFailed, res.Outcome)
			require.Error(t, res.Err)
			assert.Equal(t, 1, store.Count())
		})
	}
}

func TestSendText(t *testing.T) {
	t.Run("blank text does nothing", func(t *testing.T) {
		mux := &fakeMux{}
		d := newTestDeliverer(mux)

		res := d.SendText(context.Background(), "  \n ", target)

		assert.Equal(t, OutcomeNothing, res.Outcome)
		assert.Empty(t, mux.calls)
	})

	t.Run("reuses the delivery machine", func(t *testing.T) {
		mux := &fakeMux{exists: true, captures: []string{idlePane, "run the tests"}}
		d := newTestDeliverer(mux)

		res := d.SendText(context.Background(), "run the tests", target)

		assert.Equal(t, OutcomeSent, res.Outcome)
		assert.Equal(t, 1, mux.countMethod("SendLiteralKeys"))
	})
}

func TestEchoVerified(t *testing.T) {
	prompt := "a.go:\nLine 3: for {\nComment: tighten this loop"

	t.Run("last line present", func(t *testing.T) {
		assert.True(t, echoVerified(prompt, "composer:\nComment: tighten this loop"))
	})

	t.Run("second to last line present", func(t *testing.T) {
		assert.True(t, echoVerified(prompt, "…\nLine 3: for {\n…"))
	})

	t.Run("earlier lines do not count", func(t *testing.T) {
		assert.False(t, echoVerified(prompt, "a.go:"))
	})

	t.Run("blank prompt lines are never candidates", func(t *testing.T) {
		assert.True(t, echoVerified("body line\n\n\n", "echo: body line"))
	})
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "''", shellQuote(""))
	assert.Equal(t, "'plain'", shellQuote("plain"))
	assert.Equal(t, `'don'\''t'`, shellQuote("don't"))

	line := shellCommand("claude", []string{"--model", "opus"}, "fix a.go\nline two")
	assert.Equal(t, "'claude' '--model' 'opus' 'fix a.go\nline two'", line)
}
