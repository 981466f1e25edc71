package review

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/agent-era/devteam-sub000/internal/core/git"
	corereview "github.com/agent-era/devteam-sub000/internal/core/review"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/internal/tui/diff"
	"github.com/agent-era/devteam-sub000/pkg/textwrap"
)

// untrackedReadCap bounds how many lines of an untracked file enter the
// diff. New files can be generated megabyte blobs; the diff view only
// needs enough to review.
const untrackedReadCap = 500

// Layout selects how the diff is presented.
type Layout int

const (
	LayoutUnified Layout = iota
	LayoutSideBySide
)

// CloseMsg asks the root model to leave the review screen.
type CloseMsg struct{}

// OpenSessionMsg asks the root model to attach to the worktree's session.
type OpenSessionMsg struct {
	Session string
}

// diffLoadedMsg carries a freshly parsed diff or the error that prevented it.
type diffLoadedMsg struct {
	lines []diff.Line
	err   error
}

// deliveryDoneMsg reports the outcome of a delivery command.
type deliveryDoneMsg struct {
	result corereview.Result
}

// DiffSource is the slice of git the review screen reads from.
type DiffSource interface {
	Diff(ctx context.Context, dir, ref string) (string, error)
	ListUntracked(ctx context.Context, dir string) ([]string, error)
	ReadWorkingFile(dir, path string, maxLines int) (string, error)
}

// Deliverer pushes the queued comments into the worktree's agent session.
type Deliverer interface {
	Deliver(ctx context.Context, store *corereview.Store, target corereview.Target) corereview.Result
}

// Config carries everything the review screen needs for one worktree.
type Config struct {
	Source    DiffSource
	Comments  *corereview.Store
	Deliverer Deliverer
	Target    corereview.Target
	Branch    string
	Ignore    []string
	Layout    Layout
	Wrap      textwrap.Mode
}

// View is the diff review screen for a single worktree.
type View struct {
	src       DiffSource
	comments  *corereview.Store
	deliverer Deliverer
	target    corereview.Target
	branch    string
	ignore    []string
	watcher   *WorktreeWatcher

	layout Layout
	wrap   textwrap.Mode

	lines   []diff.Line
	keys    []int
	rows    []diff.Row
	rowKeys []int

	selected int
	scroll   int
	anim     ScrollAnim

	width  int
	height int

	loading   bool
	sending   bool
	err       error
	statusMsg string
	spinner   spinner.Model

	commentModal *CommentModal
	promptModal  *PromptModal
}

// New creates the review screen. The diff loads asynchronously on Init.
func New(cfg Config) View {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	watcher, err := NewWorktreeWatcher(cfg.Target.Dir, cfg.Ignore)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.Target.Dir).Msg("file watcher unavailable, diff will not auto-refresh")
		watcher = nil
	}

	return View{
		src:       cfg.Source,
		comments:  cfg.Comments,
		deliverer: cfg.Deliverer,
		target:    cfg.Target,
		branch:    cfg.Branch,
		ignore:    cfg.Ignore,
		watcher:   watcher,
		layout:    cfg.Layout,
		wrap:      cfg.Wrap,
		loading:   true,
		spinner:   s,
		width:     80,
		height:    24,
	}
}

// Layout returns the active layout, for persisting across runs.
func (v View) Layout() Layout { return v.layout }

// Wrap returns the active wrap mode, for persisting across runs.
func (v View) Wrap() textwrap.Mode { return v.wrap }

// HasEditorFocus reports whether a modal is capturing keystrokes.
func (v View) HasEditorFocus() bool {
	return v.commentModal != nil || v.promptModal != nil
}

// SetSize updates the view dimensions and keeps the selection on screen.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.anim.Stop()
	geom, budget := v.geometry()
	v.scroll = textwrap.EnsureVisible(geom, v.selected, v.scroll, v.contentHeight(), budget, v.wrap)
}

// Init starts the diff load, the spinner, and the file watcher.
func (v View) Init() tea.Cmd {
	cmds := []tea.Cmd{v.loadCmd(), v.spinner.Tick}
	if v.watcher != nil {
		cmds = append(cmds, v.watcher.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if v.loading || v.sending {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case ScrollFrameMsg:
		if offset, ok, cmd := v.anim.Step(msg); ok {
			v.scroll = offset
			return v, cmd
		}
		return v, nil

	case filesChangedMsg:
		log.Debug().Str("dir", v.target.Dir).Msg("worktree changed, reloading diff")
		cmds := []tea.Cmd{v.loadCmd()}
		if v.watcher != nil {
			cmds = append(cmds, v.watcher.Start())
		}
		return v, tea.Batch(cmds...)

	case diffLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.setLines(msg.lines)
		return v, nil

	case deliveryDoneMsg:
		v.sending = false
		v.statusMsg = deliveryStatus(msg.result)
		if msg.result.Outcome == corereview.OutcomeFailed {
			log.Error().Err(msg.result.Err).Str("session", msg.result.Session).Msg("comment delivery failed")
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

// handleKey processes key presses. Modals see keys first.
func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.promptModal != nil {
		modal := v.promptModal.Update(msg)
		v.promptModal = &modal
		if modal.Cancelled() {
			v.promptModal = nil
		}
		return v, nil
	}

	if v.commentModal != nil {
		modal, cmd := v.commentModal.Update(msg)
		v.commentModal = &modal
		if modal.Submitted() {
			v.comments.Add(modal.Comment())
			v.commentModal = nil
			v.statusMsg = "comment saved"
		} else if modal.Cancelled() {
			v.commentModal = nil
		}
		return v, cmd
	}

	// Any ordinary key clears the previous transient status.
	v.statusMsg = ""

	switch msg.String() {
	case "esc":
		return v, v.closeCmd()

	case "j", "down":
		return v.moveSelection(1)
	case "k", "up":
		return v.moveSelection(-1)
	case "ctrl+d":
		return v.moveSelection(max(1, v.contentHeight()/2))
	case "ctrl+u":
		return v.moveSelection(-max(1, v.contentHeight()/2))
	case "g":
		return v.jumpSelection(0)
	case "G":
		return v.jumpSelection(v.length() - 1)
	case "[":
		return v.jumpSelection(v.prevFileHeader())
	case "]":
		return v.jumpSelection(v.nextFileHeader())

	case "s":
		v.toggleLayout()
		return v, nil
	case "w":
		v.toggleWrap()
		return v, nil

	case "c":
		if v.length() == 0 {
			return v, nil
		}
		modal := NewCommentModal(v.commentDraft(), v.width)
		v.commentModal = &modal
		return v, nil

	case "d":
		v.deleteAtSelection()
		return v, nil

	case "p":
		modal := NewPromptModal(v.comments.All(), v.width, v.height)
		v.promptModal = &modal
		return v, nil

	case "S", "shift+s":
		if v.sending {
			return v, nil
		}
		if v.comments.Count() == 0 {
			v.statusMsg = "no comments queued"
			return v, nil
		}
		v.sending = true
		return v, tea.Batch(v.deliverCmd(), v.spinner.Tick)

	case "o":
		session := v.target.Session
		return v, func() tea.Msg { return OpenSessionMsg{Session: session} }
	}

	return v, nil
}

// View renders the screen.
func (v View) View() string {
	var base string

	switch {
	case v.loading:
		base = v.renderNotice(v.spinner.View() + " Loading diff...")
	case v.err != nil:
		base = v.renderNotice(styles.ErrorStyle.Render("Failed to load diff: "+v.err.Error()) +
			"\n\n" + styles.HelpStyle.Render("esc: back"))
	case v.length() == 0:
		base = v.renderNotice(styles.SuccessStyle.Render("Working tree clean, nothing to review") +
			"\n\n" + styles.HelpStyle.Render("o: open session • esc: back"))
	default:
		content := v.renderContent(v.contentHeight())
		base = content + "\n" + v.renderStatusBar()
	}

	if v.promptModal != nil {
		return v.promptModal.Overlay(base, v.width, v.height)
	}
	if v.commentModal != nil {
		return v.overlayCentered(v.commentModal.View(), base)
	}
	return base
}

func (v View) renderNotice(text string) string {
	return lipgloss.NewStyle().
		Width(v.width).
		Height(v.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)
}

// overlayCentered composites modal content over the background.
func (v View) overlayCentered(content, background string) string {
	modal := styles.ModalStyle.Render(content)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	x := (v.width - modalW) / 2
	y := (v.height - modalH) / 2

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

// renderStatusBar builds the bottom bar: layout badge, help or transient
// status in the middle, position and comment count on the right.
func (v View) renderStatusBar() string {
	badge := "UNIFIED"
	if v.layout == LayoutSideBySide {
		badge = "SPLIT"
	}
	if v.wrap == textwrap.Wrap {
		badge += " · WRAP"
	}
	left := styles.StatusInfoStyle.Render(" " + badge + " ")

	middleText := "j/k:move  s:layout  w:wrap  c:comment  d:delete  p:prompt  S:send  o:session  esc:back"
	switch {
	case v.sending:
		middleText = v.spinner.View() + " delivering comments..."
	case v.statusMsg != "":
		middleText = v.statusMsg
	}
	middle := styles.HelpStyle.Render(middleText)

	pos := fmt.Sprintf("%d/%d", v.selected+1, v.length())
	if n := v.comments.Count(); n > 0 {
		pos = fmt.Sprintf("%s %d · %s", styles.CommentMarkStyle.Render(styles.IconComment), n, pos)
	}
	right := styles.StatusBarStyle.Render(pos + " ")

	used := lipgloss.Width(left) + lipgloss.Width(middle) + lipgloss.Width(right)
	space := max(0, v.width-used)
	leftPad := space / 2
	rightPad := space - leftPad

	return left + strings.Repeat(" ", leftPad) + middle + strings.Repeat(" ", rightPad) + right
}

// contentHeight is the diff area height, everything above the status bar.
func (v View) contentHeight() int {
	return max(1, v.height-1)
}

// length is the display index count of the active layout.
func (v View) length() int {
	if v.layout == LayoutSideBySide {
		return len(v.rows)
	}
	return len(v.lines)
}

// loadCmd reads the diff and untracked files off the UI goroutine.
func (v View) loadCmd() tea.Cmd {
	src, target, ignore := v.src, v.target, v.ignore
	return func() tea.Msg {
		ctx := context.Background()

		diffText, err := src.Diff(ctx, target.Dir, "")
		if err != nil {
			return diffLoadedMsg{err: err}
		}

		paths, err := src.ListUntracked(ctx, target.Dir)
		if err != nil {
			return diffLoadedMsg{err: err}
		}
		paths = git.FilterIgnored(paths, ignore)

		var untracked []diff.UntrackedFile
		for _, p := range paths {
			content, rerr := src.ReadWorkingFile(target.Dir, p, untrackedReadCap)
			uf := diff.UntrackedFile{Path: p, Err: rerr}
			if rerr == nil && content != "" {
				uf.Lines = strings.Split(strings.TrimRight(content, "\n"), "\n")
			}
			untracked = append(untracked, uf)
		}

		return diffLoadedMsg{lines: diff.Parse(diffText, untracked)}
	}
}

// deliverCmd runs the delivery state machine off the UI goroutine; it
// blocks on settle delays.
func (v View) deliverCmd() tea.Cmd {
	deliverer, store, target := v.deliverer, v.comments, v.target
	return func() tea.Msg {
		return deliveryDoneMsg{result: deliverer.Deliver(context.Background(), store, target)}
	}
}

// closeCmd tears down the watcher and tells the root model to leave.
func (v *View) closeCmd() tea.Cmd {
	if v.watcher != nil {
		v.watcher.Close()
		v.watcher = nil
	}
	v.anim.Stop()
	return func() tea.Msg { return CloseMsg{} }
}

// setLines swaps in a reloaded diff, keeping the selection on the same
// location when it still exists.
func (v *View) setLines(lines []diff.Line) {
	loc, hadLoc := v.selectionLocation()

	v.lines = lines
	v.keys = diff.Keys(lines)
	v.rows = diff.ToSideBySide(lines)
	v.rowKeys = diff.RowKeys(v.rows)

	if hadLoc {
		v.selected = v.findLocation(loc)
	}
	v.clampSelection()
	v.snapScroll()
}

func (v *View) clampSelection() {
	if n := v.length(); v.selected >= n {
		v.selected = n - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// snapScroll repositions the viewport without animating.
func (v *View) snapScroll() {
	v.anim.Stop()
	geom, budget := v.geometry()
	v.scroll = textwrap.EnsureVisible(geom, v.selected, v.scroll, v.contentHeight(), budget, v.wrap)
}

// moveSelection shifts the selection and animates any scroll it causes.
func (v View) moveSelection(delta int) (View, tea.Cmd) {
	return v.jumpSelection(v.selected + delta)
}

// jumpSelection sets the selection to idx, clamped, and animates the
// viewport to keep it visible.
func (v View) jumpSelection(idx int) (View, tea.Cmd) {
	if v.length() == 0 {
		return v, nil
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= v.length() {
		idx = v.length() - 1
	}
	v.selected = idx

	geom, budget := v.geometry()
	desired := textwrap.EnsureVisible(geom, v.selected, v.scroll, v.contentHeight(), budget, v.wrap)
	if desired == v.scroll {
		return v, nil
	}
	cmd := v.anim.Start(v.scroll, desired)
	return v, cmd
}

// prevFileHeader returns the index of the last file header above the
// selection, or the first header when there is none above.
func (v View) prevFileHeader() int {
	best := 0
	for i := 0; i < v.selected; i++ {
		if v.indexKind(i) == diff.LineFileHeader {
			best = i
		}
	}
	return best
}

// nextFileHeader returns the index of the first file header below the
// selection, or the selection itself at the end.
func (v View) nextFileHeader() int {
	for i := v.selected + 1; i < v.length(); i++ {
		if v.indexKind(i) == diff.LineFileHeader {
			return i
		}
	}
	return v.selected
}

// toggleLayout switches between unified and side-by-side, re-finding the
// same location in the other layout.
func (v *View) toggleLayout() {
	loc, hadLoc := v.selectionLocation()
	if v.layout == LayoutSideBySide {
		v.layout = LayoutUnified
	} else {
		v.layout = LayoutSideBySide
	}
	if hadLoc {
		v.selected = v.findLocation(loc)
	}
	v.clampSelection()
	v.snapScroll()
}

func (v *View) toggleWrap() {
	if v.wrap == textwrap.Wrap {
		v.wrap = textwrap.NoWrap
	} else {
		v.wrap = textwrap.Wrap
	}
	v.snapScroll()
}

// commentDraft builds the comment location for the current selection.
// Lines with a stable key get a line comment; headers, hunks, and removed
// lines fall back to a file-level comment. An existing comment at the
// location pre-fills the draft for editing.
func (v View) commentDraft() corereview.Comment {
	file := v.indexFile(v.selected)
	key := v.indexKey(v.selected)

	draft := corereview.Comment{
		File:      file,
		LineIndex: corereview.FileLevelIndex,
		FileLevel: true,
	}
	if key != diff.NoKey {
		draft = corereview.Comment{
			File:      file,
			LineIndex: key,
			LineText:  v.indexLineText(v.selected),
		}
	}

	if existing, ok := v.comments.Get(draft.File, draft.LineIndex); ok {
		draft.Body = existing.Body
	}
	return draft
}

// deleteAtSelection removes the comment under the cursor: the line comment
// when the line has one, else the file-level comment of the line's file.
func (v *View) deleteAtSelection() {
	if v.length() == 0 {
		return
	}
	file := v.indexFile(v.selected)
	key := v.indexKey(v.selected)

	switch {
	case key != diff.NoKey && v.comments.Has(file, key):
		v.comments.Remove(file, key)
		v.statusMsg = "comment deleted"
	case v.comments.Has(file, corereview.FileLevelIndex):
		v.comments.Remove(file, corereview.FileLevelIndex)
		v.statusMsg = "file comment deleted"
	default:
		v.statusMsg = "no comment here"
	}
}

// deliveryStatus maps a delivery result to the transient status line.
func deliveryStatus(res corereview.Result) string {
	switch res.Outcome {
	case corereview.OutcomeLaunched:
		return fmt.Sprintf("agent launched in %s with the review prompt", res.Session)
	case corereview.OutcomeSent:
		return "comments delivered"
	case corereview.OutcomeWaiting:
		return "agent is waiting on input, queue kept (o to open session)"
	case corereview.OutcomeFailed:
		if res.Err != nil {
			return "delivery failed: " + res.Err.Error()
		}
		return "delivery failed"
	default:
		return "nothing to deliver"
	}
}
