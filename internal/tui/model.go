// Package tui composes the dashboard and review screens into the root
// bubbletea model.
package tui

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	corereview "github.com/agent-era/devteam-sub000/internal/core/review"
	"github.com/agent-era/devteam-sub000/internal/core/state"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/core/tmux"
	"github.com/agent-era/devteam-sub000/internal/core/validate"
	"github.com/agent-era/devteam-sub000/internal/devteam"
	"github.com/agent-era/devteam-sub000/internal/tui/components"
	"github.com/agent-era/devteam-sub000/internal/tui/components/form"
	"github.com/agent-era/devteam-sub000/internal/tui/views/dashboard"
	"github.com/agent-era/devteam-sub000/internal/tui/views/review"
	"github.com/agent-era/devteam-sub000/pkg/textwrap"
)

// agentNone is the select option that skips spawning an agent session.
const agentNone = "none"

// worktreeCreatedMsg reports the outcome of the new-worktree flow.
type worktreeCreatedMsg struct {
	worktree devteam.Worktree
	err      error
}

// attachDoneMsg reports the outcome of an attach or switch-client.
type attachDoneMsg struct {
	err error
}

// Model is the root model. The dashboard is always alive; the review view
// and the new-worktree form exist only while open.
type Model struct {
	app  *devteam.App
	dash *dashboard.View

	review *review.View
	form   *form.Dialog
	help   *components.HelpDialog

	// Last review presentation prefs, applied to the next review open and
	// persisted on quit.
	layout review.Layout
	wrap   textwrap.Mode

	width    int
	height   int
	quitting bool
}

// New builds the root model, restoring UI preferences from the last run.
func New(app *devteam.App) Model {
	st := app.State.Load()

	dash := dashboard.New(app)
	if st.Worktree != "" {
		dash.SelectByPath(st.Worktree)
	}

	wrap := textwrap.NoWrap
	if st.Wrap {
		wrap = textwrap.Wrap
	}

	return Model{
		app:    app,
		dash:   dash,
		layout: layoutFromName(st.Layout),
		wrap:   wrap,
	}
}

// Init starts the dashboard's load and poll loops.
func (m Model) Init() tea.Cmd {
	return m.dash.Init()
}

// Update routes messages to the active surface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case dashboard.OpenReviewMsg:
		return m.openReview(msg.Worktree)
	case dashboard.AttachMsg:
		return m, m.attachCmd(msg.Worktree.Session, msg.Worktree.Path)
	case dashboard.NewWorktreeMsg:
		return m.openNewWorktreeForm()

	case review.CloseMsg:
		return m.closeReview()
	case review.OpenSessionMsg:
		return m, m.attachCmd(msg.Session, "")

	case worktreeCreatedMsg:
		return m.handleWorktreeCreated(msg)
	case attachDoneMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("attach failed")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeFallthrough(msg)
}

// routeFallthrough fans data and tick messages out to the live views. The
// dashboard always gets them so its poll loops keep rescheduling while the
// review view is on top.
func (m Model) routeFallthrough(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.dash.Update(msg)}
	if m.review != nil {
		var cmd tea.Cmd
		*m.review, cmd = m.review.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.dash.SetSize(msg.Width, msg.Height)
	if m.review != nil {
		m.review.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		return m.quit()
	}

	if m.help != nil {
		if keyStr == "esc" || keyStr == "?" || keyStr == "q" {
			m.help = nil
		}
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if m.review != nil {
		if !m.review.HasEditorFocus() {
			switch keyStr {
			case "q":
				return m.quit()
			case "?":
				return m.openHelp()
			}
		}
		var cmd tea.Cmd
		*m.review, cmd = m.review.Update(msg)
		return m, cmd
	}

	if !m.dash.HasEditorFocus() {
		switch keyStr {
		case "q":
			return m.quit()
		case "?":
			return m.openHelp()
		}
	}
	return m, m.dash.Update(msg)
}

// quit persists UI preferences and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true

	st := state.State{
		Layout: layoutName(m.layout),
		Wrap:   m.wrap == textwrap.Wrap,
	}
	if m.review != nil {
		st.Layout = layoutName(m.review.Layout())
		st.Wrap = m.review.Wrap() == textwrap.Wrap
	}
	if wt := m.dash.Selected(); wt != nil {
		st.Worktree = wt.Path
	}
	if err := m.app.State.Save(st); err != nil {
		log.Debug().Err(err).Msg("state save failed")
	}

	return m, tea.Quit
}

// --- Review ---

func (m Model) openReview(wt devteam.Worktree) (tea.Model, tea.Cmd) {
	profile, err := m.app.DefaultProfile()
	if err != nil {
		log.Error().Err(err).Msg("cannot open review, default agent misconfigured")
		return m, nil
	}

	v := review.New(review.Config{
		Source:    m.app.Git,
		Comments:  m.app.Reviews.For(wt.Path),
		Deliverer: m.app.NewDeliverer(profile),
		Target:    corereview.Target{Session: wt.Session, Dir: wt.Path},
		Branch:    wt.Name(),
		Ignore:    m.app.Config.Ignore,
		Layout:    m.layout,
		Wrap:      m.wrap,
	})
	v.SetSize(m.width, m.height)

	m.review = &v
	m.dash.SetSuspended(true)
	return m, v.Init()
}

func (m Model) closeReview() (tea.Model, tea.Cmd) {
	if m.review != nil {
		m.layout = m.review.Layout()
		m.wrap = m.review.Wrap()
		m.review = nil
	}
	m.dash.SetSuspended(false)
	// Stats are stale after a review session; the agent may have committed.
	return m, m.dash.Refresh()
}

// --- New worktree ---

func (m Model) openNewWorktreeForm() (tea.Model, tea.Cmd) {
	branch := form.NewTextField("Branch", "feature/rate-limit", "").
		WithValidation(form.FieldValidation{Required: true, Custom: validate.BranchName})

	pathHint := filepath.Base(m.app.RepoDir) + "-wt/<branch>"
	path := form.NewTextField("Path (optional)", pathHint, "")

	agents := append(m.app.Agents.Kinds(), agentNone)
	agent := form.NewSelectField("Agent", agents, m.app.Config.Agents.Default)

	m.form = form.NewDialog("New Worktree",
		[]form.Field{branch, path, agent},
		[]string{"branch", "path", "agent"},
	)
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.Submitted() {
		values := m.form.FormValues()
		m.form = nil
		return m, m.createWorktreeCmd(values)
	}
	if m.form.Cancelled() {
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) createWorktreeCmd(values map[string]any) tea.Cmd {
	app := m.app
	branch, _ := values["branch"].(string)
	path, _ := values["path"].(string)
	agentKind, _ := values["agent"].(string)

	return func() tea.Msg {
		ctx := context.Background()

		if strings.TrimSpace(path) == "" {
			path = devteam.DefaultWorktreePath(app.RepoDir, branch)
		}
		wt, err := app.CreateWorktree(ctx, path, branch, true)
		if err != nil {
			return worktreeCreatedMsg{err: err}
		}
		if agentKind != agentNone && agentKind != "" {
			if err := app.SpawnSession(ctx, wt, agentKind); err != nil {
				return worktreeCreatedMsg{worktree: wt, err: err}
			}
		}
		return worktreeCreatedMsg{worktree: wt}
	}
}

func (m Model) handleWorktreeCreated(msg worktreeCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("new worktree flow failed")
		m.dash.SetNotice("New worktree failed: " + msg.err.Error())
	}
	if msg.worktree.Path == "" {
		return m, nil
	}
	// Selection lands on the new worktree once the reload sees it.
	m.dash.SelectByPath(msg.worktree.Path)
	return m, m.dash.Refresh()
}

// --- Attach ---

// attachCmd connects the user to a session. Inside tmux this is a
// switch-client and the TUI keeps running; outside, the TUI releases the
// terminal to tmux and resumes when the user detaches. A dead session is
// recreated first when the worktree dir is known.
func (m Model) attachCmd(session, dir string) tea.Cmd {
	mux := m.app.Mux

	if tmux.InsideTmux() {
		return func() tea.Msg {
			ctx := context.Background()
			if dir != "" && !mux.SessionExists(ctx, session) {
				if err := mux.CreateSession(ctx, session, dir); err != nil {
					return attachDoneMsg{err: err}
				}
			}
			return attachDoneMsg{err: mux.AttachOrSwitch(ctx, session)}
		}
	}

	args := []string{"new-session", "-A", "-s", session}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	c := exec.Command(m.app.Config.TmuxPath, args...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return attachDoneMsg{err: err}
	})
}

// --- Help ---

func (m Model) openHelp() (tea.Model, tea.Cmd) {
	m.help = components.NewHelpDialog("Keyboard Shortcuts", helpSections())
	return m, nil
}

func helpSections() []components.HelpSection {
	return []components.HelpSection{
		{
			Title: "Dashboard",
			Entries: []components.HelpEntry{
				{Key: "enter", Desc: "review worktree diff"},
				{Key: "a", Desc: "attach to agent session"},
				{Key: "n", Desc: "new worktree"},
				{Key: "r", Desc: "refresh list and stats"},
				{Key: "/", Desc: "filter worktrees"},
			},
		},
		{
			Title: "Review",
			Entries: []components.HelpEntry{
				{Key: "j/k", Desc: "move selection"},
				{Key: "ctrl+d/u", Desc: "half page down/up"},
				{Key: "g/G", Desc: "first/last line"},
				{Key: "[/]", Desc: "previous/next file"},
				{Key: "s", Desc: "toggle side-by-side"},
				{Key: "w", Desc: "toggle wrap"},
				{Key: "c", Desc: "comment on line"},
				{Key: "d", Desc: "delete comment"},
				{Key: "p", Desc: "preview prompt"},
				{Key: "S", Desc: "send comments to agent"},
				{Key: "o", Desc: "open agent session"},
				{Key: "esc", Desc: "back to dashboard"},
			},
		},
		{
			Title: "Global",
			Entries: []components.HelpEntry{
				{Key: "?", Desc: "toggle this help"},
				{Key: "q", Desc: "quit"},
			},
		},
	}
}

// --- Rendering ---

// View draws the active surface with any modal layered on top.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	var content string
	if m.review != nil {
		content = m.review.View()
	} else {
		content = m.dash.View()
	}

	switch {
	case m.form != nil:
		content = overlayCentered(styles.ModalStyle.Render(m.form.View()), content, w, h)
	case m.help != nil:
		content = m.help.Overlay(content, w, h)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func overlayCentered(modal, background string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)
	modalLayer.X((width - lipgloss.Width(modal)) / 2).Y((height - lipgloss.Height(modal)) / 2).Z(1)
	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

func layoutName(l review.Layout) string {
	if l == review.LayoutSideBySide {
		return "side-by-side"
	}
	return "unified"
}

func layoutFromName(name string) review.Layout {
	if name == "side-by-side" {
		return review.LayoutSideBySide
	}
	return review.LayoutUnified
}
