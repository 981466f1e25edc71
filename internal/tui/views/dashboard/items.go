package dashboard

import (
	"fmt"
	"image/color"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/agent-era/devteam-sub000/internal/core/agent"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/devteam"
	"github.com/agent-era/devteam-sub000/pkg/kv"
)

// animationFrameCount is the total number of frames in the working pulse.
const animationFrameCount = 12

// workingPulseColors caches the pulse colors derived from the current theme.
var (
	workingPulseColors []color.Color
	workingPulseSeed   uint32 // R channel of seed color, used to detect theme changes
)

// generatePulseColors creates a symmetric fade animation from a seed color.
// It dims the color to minBrightness (0.0-1.0) at the midpoint and returns
// to full brightness.
func generatePulseColors(base color.Color, frames int, minBrightness float64) []color.Color {
	r, g, b, _ := base.RGBA()
	br, bg, bb := float64(r>>8), float64(g>>8), float64(b>>8)

	half := frames / 2
	colors := make([]color.Color, frames)
	for i := range frames {
		// Triangle wave: 1.0 at edges, minBrightness at midpoint
		var t float64
		if i <= half {
			t = float64(i) / float64(half)
		} else {
			t = float64(frames-i) / float64(half)
		}
		scale := 1.0 - t*(1.0-minBrightness)

		colors[i] = lipgloss.Color(fmt.Sprintf("#%02x%02x%02x",
			uint8(br*scale),
			uint8(bg*scale),
			uint8(bb*scale),
		))
	}
	return colors
}

// renderWorkingIcon renders the working status icon with a fade pulse.
func renderWorkingIcon(frame int) string {
	r, _, _, _ := styles.ColorWarning.RGBA()
	if workingPulseColors == nil || workingPulseSeed != uint32(r) {
		workingPulseColors = generatePulseColors(styles.ColorWarning, animationFrameCount, 0.55)
		workingPulseSeed = uint32(r)
	}

	if frame < 0 || frame >= len(workingPulseColors) {
		frame = 0
	}
	style := lipgloss.NewStyle().Foreground(workingPulseColors[frame])
	return style.Render(styles.IconAgentWorking)
}

// Item wraps one worktree for the dashboard list.
type Item struct {
	Worktree devteam.Worktree
}

// FilterValue returns name plus path so either can be filtered on.
func (i Item) FilterValue() string { return i.Worktree.Name() + " " + i.Worktree.Path }

// DelegateStyles defines the styles for worktree rows.
type DelegateStyles struct {
	Name           lipgloss.Style
	NameSelected   lipgloss.Style
	SelectedBorder lipgloss.Style
	Branch         lipgloss.Style
	Muted          lipgloss.Style

	GitAdditions lipgloss.Style
	GitDeletions lipgloss.Style
	GitClean     lipgloss.Style
	GitDirty     lipgloss.Style
	GitLoading   lipgloss.Style

	AgentWaiting lipgloss.Style
	AgentIdle    lipgloss.Style
	AgentOffline lipgloss.Style
}

// DefaultDelegateStyles returns the default styles for worktree rows.
func DefaultDelegateStyles() DelegateStyles {
	return DelegateStyles{
		Name:           lipgloss.NewStyle().Foreground(styles.ColorForeground),
		NameSelected:   lipgloss.NewStyle().Foreground(styles.ColorPrimary).Bold(true),
		SelectedBorder: lipgloss.NewStyle().Foreground(styles.ColorPrimary),
		Branch:         lipgloss.NewStyle().Foreground(styles.ColorMuted),
		Muted:          lipgloss.NewStyle().Foreground(styles.ColorMuted),

		GitAdditions: styles.GitAdditionsStyle,
		GitDeletions: styles.GitDeletionsStyle,
		GitClean:     styles.GitCleanStyle,
		GitDirty:     styles.GitDirtyStyle,
		GitLoading:   styles.GitLoadingStyle,

		AgentWaiting: styles.AgentWaitingStyle,
		AgentIdle:    styles.AgentIdleStyle,
		AgentOffline: styles.AgentOfflineStyle,
	}
}

// Delegate renders worktree rows in the dashboard list.
type Delegate struct {
	Styles         DelegateStyles
	Stats          *StatsFetcher
	AgentStatuses  *kv.Store[string, agent.Status]
	NameWidth      int
	AnimationFrame int
}

// Height returns the height of each row.
func (d Delegate) Height() int { return 1 }

// Spacing returns the spacing between rows.
func (d Delegate) Spacing() int { return 0 }

// Update handles item updates.
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single worktree row.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var prefix string
	if isSelected {
		prefix = d.Styles.SelectedBorder.Render("┃") + " "
	} else {
		prefix = "  "
	}

	icon := d.statusIcon(it.Worktree)

	nameStyle := d.Styles.Name
	if isSelected {
		nameStyle = d.Styles.NameSelected
	}
	name := nameStyle.Render(fmt.Sprintf("%-*s", d.NameWidth, it.Worktree.Name()))
	branch := d.Styles.Branch.Render(styles.IconGitBranch + " ")

	line := fmt.Sprintf("%s%s %s%s  %s", prefix, icon, branch, name, d.statsColumn(it.Worktree.Path))
	if it.Worktree.Live {
		line += "  " + d.Styles.Muted.Render("· "+it.Worktree.Session)
	}

	_, _ = io.WriteString(w, line)
}

// statusIcon picks the agent status indicator for a worktree row.
func (d Delegate) statusIcon(wt devteam.Worktree) string {
	if !wt.Live || d.AgentStatuses == nil {
		return d.Styles.AgentOffline.Render(styles.IconAgentOffline)
	}

	status, ok := d.AgentStatuses.Get(wt.Session)
	if !ok {
		return d.Styles.AgentOffline.Render(styles.IconAgentOffline)
	}

	switch status {
	case agent.StatusWorking:
		return renderWorkingIcon(d.AnimationFrame)
	case agent.StatusWaiting:
		return d.Styles.AgentWaiting.Render(styles.IconAgentWaiting)
	case agent.StatusIdle:
		return d.Styles.AgentIdle.Render(styles.IconAgentIdle)
	default:
		return d.Styles.AgentOffline.Render(styles.IconAgentOffline)
	}
}

// statsColumn renders the cached git stats for a worktree path.
func (d Delegate) statsColumn(path string) string {
	if d.Stats == nil {
		return d.Styles.GitLoading.Render("…")
	}

	s, ok := d.Stats.Get(path)
	if !ok {
		return d.Styles.GitLoading.Render("…")
	}
	if s.Err != nil {
		return d.Styles.GitLoading.Render("—")
	}
	if s.Clean && s.Additions == 0 && s.Deletions == 0 {
		return d.Styles.GitClean.Render("clean")
	}

	col := d.Styles.GitAdditions.Render(fmt.Sprintf("+%d", s.Additions)) +
		" " + d.Styles.GitDeletions.Render(fmt.Sprintf("-%d", s.Deletions))
	if !s.Clean {
		col += " " + d.Styles.GitDirty.Render(styles.IconGit)
	}
	return col
}
