// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/agent-era/devteam-sub000/internal/core/styles"
)

// HelpEntry is a single keyboard shortcut line.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection groups related shortcuts under a title.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog displays the available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the dialog contents inside the modal frame.
func (h *HelpDialog) View() string {
	var lines []string

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.StatusInfoStyle.Render(section.Title))
		}
		for _, entry := range section.Entries {
			lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		"",
		styles.ModalHelpStyle.Render("esc/? close"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay renders the dialog centered over the background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)
	modalLayer.X((width - lipgloss.Width(modal)) / 2).Y((height - lipgloss.Height(modal)) / 2).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

func formatKeyDesc(key, desc string) string {
	const keyWidth = 10

	padded := key + strings.Repeat(" ", max(1, keyWidth-lipgloss.Width(key)))
	return styles.SelectItemStyle.Render(padded) + desc
}
