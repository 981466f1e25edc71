package review

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	corereview "github.com/agent-era/devteam-sub000/internal/core/review"
	"github.com/agent-era/devteam-sub000/internal/core/styles"
)

const (
	promptModalMaxWidth  = 100
	promptModalMaxHeight = 30
	promptModalMargin    = 4
	promptModalChrome    = 6
	promptModalPadding   = 4
)

// PromptModal shows the prompt the queued comments would produce, rendered
// as markdown. Quoted line content indents, so it lands in code styling.
type PromptModal struct {
	count     int
	viewport  viewport.Model
	cancelled bool
}

// NewPromptModal renders the prompt for the given comments.
func NewPromptModal(comments []corereview.Comment, width, height int) PromptModal {
	modalWidth := min(width-promptModalMargin, promptModalMaxWidth)
	modalHeight := min(height-promptModalMargin, promptModalMaxHeight)
	contentHeight := max(1, modalHeight-promptModalChrome)

	vp := viewport.New(
		viewport.WithWidth(max(10, modalWidth-promptModalPadding)),
		viewport.WithHeight(contentHeight),
	)

	m := PromptModal{count: len(comments), viewport: vp}
	m.renderContent(corereview.FormatPrompt(comments), max(10, modalWidth-promptModalPadding))
	return m
}

func (m *PromptModal) renderContent(prompt string, width int) {
	if prompt == "" {
		m.viewport.SetContent(styles.MutedStyle.Render("No comments queued."))
		return
	}

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw prompt")
		m.viewport.SetContent(prompt)
		return
	}

	rendered, err := renderer.Render(prompt)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render prompt markdown, showing raw prompt")
		m.viewport.SetContent(prompt)
		return
	}

	m.viewport.SetContent(strings.TrimRight(rendered, "\n"))
}

// Update handles scrolling and dismissal keys.
func (m PromptModal) Update(msg tea.KeyMsg) PromptModal {
	switch msg.String() {
	case "esc", "q", "enter", "p":
		m.cancelled = true
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "ctrl+d":
		m.viewport.HalfPageDown()
	case "ctrl+u":
		m.viewport.HalfPageUp()
	}
	return m
}

// Cancelled reports whether the modal was dismissed.
func (m PromptModal) Cancelled() bool { return m.cancelled }

// Overlay renders the modal centered over the background.
func (m PromptModal) Overlay(background string, width, height int) string {
	modalWidth := min(width-promptModalMargin, promptModalMaxWidth)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.MutedStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	title := fmt.Sprintf("Prompt Preview · %d comment", m.count)
	if m.count != 1 {
		title += "s"
	}

	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(title+scrollInfo),
		"",
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[j/k] scroll  [esc] close"),
	)

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(modalContent)

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	modalLayer.X((width - modalW) / 2).Y((height - modalH) / 2).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
