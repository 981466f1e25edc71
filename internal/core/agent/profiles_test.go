package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaudeClassify(t *testing.T) {
	p := Claude()

	tests := []struct {
		name string
		pane string
		want Status
	}{
		{"interrupt hint", "✻ Baking… (8s · esc to interrupt)", StatusWorking},
		{"thinking with token counter", "Thinking… (45s · 1234 tokens)", StatusWorking},
		{"connecting with token counter", "Connecting… (2s · 0 tokens)", StatusWorking},
		{"spinner on last line", "some output\n⠙ running tests", StatusWorking},
		{"permission dialog", "Do you want to make this edit?\n❯ Yes\n  No", StatusWaiting},
		{"tool use dialog", "Bash command\n  Yes, allow once\n  No, and tell Claude what to do differently", StatusWaiting},
		{"input prompt", "✻ Welcome to Claude Code!\n\n> ", StatusIdle},
		{"plain output", "done. 3 files changed.", StatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.pane))
		})
	}
}

func TestClaudeClassifyStripsANSI(t *testing.T) {
	p := Claude()
	pane := "\x1b[2m(12s · 420 tokens · \x1b[1mesc to interrupt\x1b[0m)\x1b[0m"
	assert.Equal(t, StatusWorking, p.Classify(pane))
}

func TestClassifyIgnoresScrolledOutSpinner(t *testing.T) {
	p := Claude()
	// A spinner frame left behind in history must not read as busy.
	pane := "⠹ old frame\n" + strings.Repeat("output line\n", 8) + "> "
	assert.Equal(t, StatusIdle, p.Classify(pane))
}

func TestClassifyScansTailOnly(t *testing.T) {
	p := Claude()
	// A dialog that scrolled far off the tail window no longer counts.
	pane := "Do you want to proceed?\n" + strings.Repeat("output line\n", 12) + "> "
	assert.Equal(t, StatusIdle, p.Classify(pane))
}

func TestCodexClassify(t *testing.T) {
	p := Codex()

	tests := []struct {
		name string
		pane string
		want Status
	}{
		{"interrupt hint", "working on it (ctrl+c to interrupt)", StatusWorking},
		{"confirmation", "Allow command `rm -rf build`? [y/n]", StatusWaiting},
		{"plain prompt", "codex session ready\n> ", StatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.pane))
		})
	}
}

func TestGeminiClassify(t *testing.T) {
	p := Gemini()

	tests := []struct {
		name string
		pane string
		want Status
	}{
		{"cancel hint", "Generating… press esc to cancel", StatusWorking},
		{"execution dialog", "Allow execution of `npm install`?", StatusWaiting},
		{"prompt", "gemini> ", StatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.pane))
		})
	}
}

func TestAiderClassify(t *testing.T) {
	p := Aider()

	tests := []struct {
		name string
		pane string
		want Status
	}{
		{"spinner", "⠼ applying edits", StatusWorking},
		{"confirmation", "Add file to the chat? (Y)es/(N)o/(D)on't ask again", StatusWaiting},
		{"prompt", "aider> ", StatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.pane))
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		profile Profile
		pane    string
		want    bool
	}{
		{Claude(), "✻ Welcome to Claude Code!", true},
		{Claude(), "powered by Anthropic", true},
		{Claude(), "$ ls\ngo.mod\n$ ", false},
		{Codex(), "OpenAI Codex v0.4", true},
		{Gemini(), "gemini-2.5-pro ready", true},
		{Aider(), "aider v0.86 main model gpt-4o", true},
		{Aider(), "plain shell", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.profile.Matches(tt.pane), "%s on %q", tt.profile.Kind(), tt.pane)
	}
}

func TestLaunchCommandDefaults(t *testing.T) {
	for _, p := range []Profile{Claude(), Codex(), Gemini(), Aider()} {
		bin, args := p.LaunchCommand()
		assert.Equal(t, p.Kind(), bin)
		assert.Empty(t, args)
	}
}
