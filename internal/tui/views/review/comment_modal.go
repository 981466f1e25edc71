package review

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	corereview "github.com/agent-era/devteam-sub000/internal/core/review"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
	"github.com/agent-era/devteam-sub000/pkg/textwrap"
)

// CommentModal edits the comment body for one diff location. The draft
// carries everything but the body; submit hands the completed comment back
// to the view.
type CommentModal struct {
	textInput textinput.Model
	draft     corereview.Comment
	editing   bool
	width     int
	submitted bool
	cancelled bool
}

// NewCommentModal opens an entry modal for the draft location. A draft
// with a non-empty body is an edit and pre-fills the input.
func NewCommentModal(draft corereview.Comment, width int) CommentModal {
	ti := textinput.New()
	ti.Placeholder = "Enter review comment..."
	ti.Focus()
	ti.SetWidth(max(20, width-10))

	editing := draft.Body != ""
	if editing {
		ti.SetValue(draft.Body)
		ti.CursorEnd()
	}

	return CommentModal{
		textInput: ti,
		draft:     draft,
		editing:   editing,
		width:     width,
	}
}

// Update handles key input. Enter with a non-empty body submits, esc
// cancels.
func (m CommentModal) Update(msg tea.Msg) (CommentModal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if strings.TrimSpace(m.textInput.Value()) != "" {
				m.submitted = true
				return m, nil
			}
		case "esc":
			m.cancelled = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the modal content, without the outer border.
func (m CommentModal) View() string {
	title := "Add Comment"
	if m.editing {
		title = "Edit Comment"
	}

	location := fmt.Sprintf("%s · whole file", m.draft.File)
	if !m.draft.FileLevel {
		location = fmt.Sprintf("%s · line %d", m.draft.File, m.draft.LineIndex+1)
	}

	parts := []string{
		styles.ModalTitleStyle.Render(title),
		styles.MutedStyle.Render(location),
	}
	if context := strings.TrimRight(m.draft.LineText, "\n"); context != "" {
		parts = append(parts, styles.CommentTextStyle.Render(textwrap.Truncate(context, max(20, m.width-10))))
	}
	parts = append(parts,
		m.textInput.View(),
		styles.ModalHelpStyle.Render("enter: save • esc: cancel"),
	)

	return strings.Join(parts, "\n")
}

// Submitted reports whether the comment was submitted.
func (m CommentModal) Submitted() bool { return m.submitted }

// Cancelled reports whether the modal was dismissed.
func (m CommentModal) Cancelled() bool { return m.cancelled }

// Comment returns the draft completed with the entered body.
func (m CommentModal) Comment() corereview.Comment {
	c := m.draft
	c.Body = strings.TrimSpace(m.textInput.Value())
	return c
}
