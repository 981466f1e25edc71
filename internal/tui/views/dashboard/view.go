// Package dashboard is the worktree overview screen. Each row joins three
// data sources refreshed on their own cadence: the worktree list from git,
// TTL-cached diff stats, and agent statuses polled from tmux panes.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/devteam"
)

const (
	statusPollInterval = 2 * time.Second
	statusPollTimeout  = 2 * time.Second
	statusPollWorkers  = 4
	refreshInterval    = 10 * time.Second
	animTickInterval   = 100 * time.Millisecond
)

// OpenReviewMsg requests the parent to open the review view for a worktree.
type OpenReviewMsg struct {
	Worktree devteam.Worktree
}

// AttachMsg requests the parent to attach to a worktree's tmux session.
type AttachMsg struct {
	Worktree devteam.Worktree
}

// NewWorktreeMsg requests the parent to open the new worktree form.
type NewWorktreeMsg struct{}

type worktreesLoadedMsg struct {
	worktrees []devteam.Worktree
	err       error
}

type statusPolledMsg struct{}

type statusPollTickMsg struct{}

type refreshTickMsg struct{}

type animTickMsg struct{}

// View is the worktree dashboard.
type View struct {
	app      *devteam.App
	list     list.Model
	delegate Delegate
	stats    *StatsFetcher

	worktrees   []devteam.Worktree
	restorePath string
	loading     bool
	err         error
	notice      string
	suspended   bool

	spinner   spinner.Model
	animFrame int

	width  int
	height int
}

// New creates the dashboard view over the shared app services.
func New(app *devteam.App) *View {
	delegate := Delegate{
		Styles:        DefaultDelegateStyles(),
		Stats:         NewStatsFetcher(app.Git),
		AgentStatuses: app.Statuses,
	}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	// Quitting is the root model's job; q and esc must not leak into the list.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	l.FilterInput.Prompt = "Filter: "
	filterStyles := textinput.DefaultStyles(true)
	filterStyles.Focused.Prompt = styles.FormTitleStyle
	filterStyles.Cursor.Color = styles.ColorPrimary
	l.FilterInput.SetStyles(filterStyles)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return &View{
		app:      app,
		list:     l,
		delegate: delegate,
		stats:    delegate.Stats,
		spinner:  s,
		loading:  true,
		width:    80,
		height:   24,
	}
}

// Init returns the initial commands for the dashboard.
func (v *View) Init() tea.Cmd {
	return tea.Batch(
		v.loadWorktrees(),
		v.spinner.Tick,
		scheduleStatusPoll(),
		scheduleRefresh(),
		scheduleAnimTick(),
	)
}

// Update handles messages for the dashboard.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case worktreesLoadedMsg:
		return v.handleWorktreesLoaded(msg)
	case statsFetchedMsg:
		return nil
	case statusPolledMsg:
		return nil
	case statusPollTickMsg:
		return v.handleStatusPollTick()
	case refreshTickMsg:
		return v.handleRefreshTick()
	case animTickMsg:
		return v.handleAnimTick()
	case spinner.TickMsg:
		if !v.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return v.handleKey(msg)
	default:
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return cmd
	}
}

func (v *View) handleWorktreesLoaded(msg worktreesLoadedMsg) tea.Cmd {
	v.loading = false
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("failed to list worktrees")
		v.err = msg.err
		return nil
	}
	v.err = nil
	v.worktrees = msg.worktrees
	v.rebuildItems()

	if v.restorePath != "" {
		path := v.restorePath
		v.restorePath = ""
		v.SelectByPath(path)
	}

	return tea.Batch(v.stats.Fetch(v.paths()), v.pollStatuses())
}

func (v *View) handleStatusPollTick() tea.Cmd {
	cmds := []tea.Cmd{scheduleStatusPoll()}
	if !v.suspended {
		if cmd := v.pollStatuses(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := v.stats.Fetch(v.paths()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (v *View) handleRefreshTick() tea.Cmd {
	cmds := []tea.Cmd{scheduleRefresh()}
	if !v.suspended {
		cmds = append(cmds, v.loadWorktrees())
	}
	return tea.Batch(cmds...)
}

func (v *View) handleAnimTick() tea.Cmd {
	v.animFrame = (v.animFrame + 1) % animationFrameCount
	v.delegate.AnimationFrame = v.animFrame
	v.list.SetDelegate(v.delegate)
	return scheduleAnimTick()
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Any key dismisses a pending notice.
	v.notice = ""

	if v.list.SettingFilter() {
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "enter":
		if wt := v.Selected(); wt != nil {
			sel := *wt
			return func() tea.Msg { return OpenReviewMsg{Worktree: sel} }
		}
		return nil
	case "a":
		if wt := v.Selected(); wt != nil {
			sel := *wt
			return func() tea.Msg { return AttachMsg{Worktree: sel} }
		}
		return nil
	case "n":
		return func() tea.Msg { return NewWorktreeMsg{} }
	case "r":
		v.stats.Invalidate()
		return v.loadWorktrees()
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

// View renders the dashboard.
func (v *View) View() string {
	var body string
	switch {
	case v.loading:
		body = v.renderNotice(v.spinner.View() + " Loading worktrees...")
	case v.err != nil:
		body = v.renderNotice(styles.ErrorStyle.Render("Failed to list worktrees: " + v.err.Error()))
	case len(v.worktrees) == 0:
		body = v.renderNotice(styles.MutedStyle.Render("No worktrees found") + "\n\n" +
			styles.HelpStyle.Render("n: new worktree • q: quit"))
	default:
		body = lipgloss.NewStyle().Height(v.contentHeight()).Render(v.list.View())
	}

	return v.renderTitle() + "\n" + body + "\n" + v.renderStatusBar()
}

func (v *View) renderTitle() string {
	return styles.TitleStyle.Render(" devteam") + styles.MutedStyle.Render(" · "+v.app.RepoDir)
}

func (v *View) renderNotice(text string) string {
	return lipgloss.NewStyle().
		Width(v.width).
		Height(v.contentHeight()).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)
}

func (v *View) renderStatusBar() string {
	label := "WORKTREE"
	if len(v.worktrees) != 1 {
		label += "S"
	}
	left := styles.StatusInfoStyle.Render(fmt.Sprintf(" %d %s ", len(v.worktrees), label))

	middle := styles.HelpStyle.Render("enter:review  a:attach  n:new  r:refresh  /:filter  ?:help  q:quit")
	if v.notice != "" {
		middle = styles.ErrorStyle.Render(v.notice)
	}

	pos := ""
	if n := len(v.list.Items()); n > 0 {
		pos = fmt.Sprintf("%d/%d", v.list.Index()+1, n)
	}
	right := styles.StatusBarStyle.Render(pos + " ")

	used := lipgloss.Width(left) + lipgloss.Width(middle) + lipgloss.Width(right)
	space := max(0, v.width-used)
	leftPad := space / 2
	rightPad := space - leftPad

	return left + strings.Repeat(" ", leftPad) + middle + strings.Repeat(" ", rightPad) + right
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.list.SetSize(width, v.contentHeight())
}

func (v *View) contentHeight() int {
	return max(1, v.height-2)
}

// SetSuspended pauses the poll work while another view or modal is in
// front. Tick scheduling continues so polling resumes on its own.
func (v *View) SetSuspended(suspended bool) {
	v.suspended = suspended
}

// SetNotice shows text in the status bar until the next key press.
func (v *View) SetNotice(text string) {
	v.notice = text
}

// HasEditorFocus returns true while the list filter input is active.
func (v *View) HasEditorFocus() bool {
	return v.list.SettingFilter()
}

// Selected returns the worktree under the cursor, or nil.
func (v *View) Selected() *devteam.Worktree {
	item := v.list.SelectedItem()
	if item == nil {
		return nil
	}
	it, ok := item.(Item)
	if !ok {
		return nil
	}
	return &it.Worktree
}

// SelectByPath moves the cursor to the worktree with the given path. A path
// not in the list yet is remembered and applied on the next load, which
// covers both startup restore and freshly created worktrees.
func (v *View) SelectByPath(path string) {
	for i, wt := range v.worktrees {
		if wt.Path == path {
			v.list.Select(i)
			return
		}
	}
	v.restorePath = path
}

// Refresh reloads the worktree list, bypassing the stats cache.
func (v *View) Refresh() tea.Cmd {
	v.stats.Invalidate()
	return v.loadWorktrees()
}

func (v *View) rebuildItems() {
	selectedPath := ""
	if wt := v.Selected(); wt != nil {
		selectedPath = wt.Path
	}

	items := make([]list.Item, len(v.worktrees))
	nameWidth := 0
	for i, wt := range v.worktrees {
		items[i] = Item{Worktree: wt}
		nameWidth = max(nameWidth, len(wt.Name()))
	}
	v.delegate.NameWidth = nameWidth
	v.list.SetDelegate(v.delegate)
	v.list.SetItems(items)

	if selectedPath != "" {
		for i, wt := range v.worktrees {
			if wt.Path == selectedPath {
				v.list.Select(i)
				break
			}
		}
	}
}

func (v *View) paths() []string {
	paths := make([]string, len(v.worktrees))
	for i, wt := range v.worktrees {
		paths[i] = wt.Path
	}
	return paths
}

func (v *View) loadWorktrees() tea.Cmd {
	app := v.app
	return func() tea.Msg {
		wts, err := app.Worktrees(context.Background())
		return worktreesLoadedMsg{worktrees: wts, err: err}
	}
}

// pollStatuses captures and classifies every live session's pane in a
// bounded worker pool. Results land in the shared status store the
// delegate reads from.
func (v *View) pollStatuses() tea.Cmd {
	live := make([]devteam.Worktree, 0, len(v.worktrees))
	for _, wt := range v.worktrees {
		if wt.Live {
			live = append(live, wt)
		}
	}
	if len(live) == 0 {
		return nil
	}

	app := v.app
	return func() tea.Msg {
		sem := make(chan struct{}, statusPollWorkers)
		var wg sync.WaitGroup

		for _, wt := range live {
			wg.Add(1)
			go func(session string) {
				defer wg.Done()

				sem <- struct{}{}
				defer func() { <-sem }()

				ctx, cancel := context.WithTimeout(context.Background(), statusPollTimeout)
				defer cancel()

				app.AgentStatus(ctx, session)
			}(wt.Session)
		}

		wg.Wait()
		return statusPolledMsg{}
	}
}

func scheduleStatusPoll() tea.Cmd {
	return tea.Tick(statusPollInterval, func(time.Time) tea.Msg { return statusPollTickMsg{} })
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func scheduleAnimTick() tea.Cmd {
	return tea.Tick(animTickInterval, func(time.Time) tea.Msg { return animTickMsg{} })
}
