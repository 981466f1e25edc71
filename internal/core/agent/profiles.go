package agent

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Busy and approval markers render near the bottom of the screen, so
// classification scans only a tail window of the capture.
const (
	tailWindow = 10
	// Animated spinner glyphs sit on the very last lines; a wider window
	// would catch stale spinners scrolled into history.
	spinnerWindow = 5
)

// spinnerRunes are the braille animation frames agent CLIs render while
// processing (cli-spinners "dots").
const spinnerRunes = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"

// genericWorkingPrefixes flag a busy tool when a tail line starts with one
// of them. Prefix matching keeps words like "working" from firing inside
// ordinary output ("working tree clean").
var genericWorkingPrefixes = []string{"processing", "loading", "please wait", "working"}

// patternProfile classifies a tool from substring tables over the pane tail.
type patternProfile struct {
	kind string
	bin  string
	args []string

	// signature identifies the tool anywhere in the pane, lowercase.
	signature []string
	// working marks active processing, matched in the tail, lowercase.
	working []string
	// workingPairs mark processing when both substrings appear in the tail.
	workingPairs [][2]string
	// waiting marks a pending user decision, matched in the tail, lowercase.
	waiting []string
}

func (p *patternProfile) Kind() string { return p.kind }

func (p *patternProfile) LaunchCommand() (string, []string) {
	return p.bin, append([]string(nil), p.args...)
}

func (p *patternProfile) Matches(pane string) bool {
	lower := strings.ToLower(ansi.Strip(pane))
	for _, sig := range p.signature {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

func (p *patternProfile) Classify(pane string) Status {
	lines := strings.Split(ansi.Strip(pane), "\n")
	if len(lines) > tailWindow {
		lines = lines[len(lines)-tailWindow:]
	}
	lower := strings.ToLower(strings.Join(lines, "\n"))

	if p.isWorking(lower, lines) {
		return StatusWorking
	}
	if p.isWaiting(lower) {
		return StatusWaiting
	}
	return StatusIdle
}

func (p *patternProfile) isWorking(lower string, tail []string) bool {
	for _, marker := range p.working {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	for _, pair := range p.workingPairs {
		if strings.Contains(lower, pair[0]) && strings.Contains(lower, pair[1]) {
			return true
		}
	}
	last := tail
	if len(last) > spinnerWindow {
		last = last[len(last)-spinnerWindow:]
	}
	for _, line := range last {
		if strings.ContainsAny(line, spinnerRunes) {
			return true
		}
		trimmed := strings.ToLower(strings.TrimSpace(line))
		for _, prefix := range genericWorkingPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				return true
			}
		}
	}
	return false
}

func (p *patternProfile) isWaiting(lower string) bool {
	for _, marker := range p.waiting {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Claude returns the profile for the Claude Code CLI.
func Claude() Profile {
	return &patternProfile{
		kind:      "claude",
		bin:       "claude",
		signature: []string{"claude", "anthropic"},
		working:   []string{"esc to interrupt"},
		workingPairs: [][2]string{
			{"thinking", "tokens"},
			{"connecting", "tokens"},
		},
		waiting: []string{
			"no, and tell claude what to do differently",
			"yes, allow once",
			"do you want",
			"❯ yes",
		},
	}
}

// Codex returns the profile for the Codex CLI.
func Codex() Profile {
	return &patternProfile{
		kind:      "codex",
		bin:       "codex",
		signature: []string{"codex", "openai"},
		working:   []string{"esc to interrupt", "ctrl+c to interrupt"},
		waiting: []string{
			"do you want",
			"allow command",
			"[y/n]",
		},
	}
}

// Gemini returns the profile for the Gemini CLI.
func Gemini() Profile {
	return &patternProfile{
		kind:      "gemini",
		bin:       "gemini",
		signature: []string{"gemini"},
		working:   []string{"esc to cancel"},
		waiting: []string{
			"allow execution",
			"do you want",
			"[y/n]",
		},
	}
}

// Aider returns the profile for the Aider CLI.
func Aider() Profile {
	return &patternProfile{
		kind:      "aider",
		bin:       "aider",
		signature: []string{"aider"},
		waiting: []string{
			"(y)es/(n)o",
			"don't ask again",
			"[y/n]",
		},
	}
}
