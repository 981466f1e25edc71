// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style

	// TUI chrome.
	TitleStyle       lipgloss.Style
	StatusBarStyle   lipgloss.Style
	StatusInfoStyle  lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style
	SpinnerStyle     lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	FormTitleStyle        lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style
	SelectItemStyle       lipgloss.Style

	// Dashboard styles.
	GitAdditionsStyle lipgloss.Style
	GitDeletionsStyle lipgloss.Style
	GitCleanStyle     lipgloss.Style
	GitDirtyStyle     lipgloss.Style
	GitLoadingStyle   lipgloss.Style

	AgentWorkingStyle lipgloss.Style
	AgentWaitingStyle lipgloss.Style
	AgentIdleStyle    lipgloss.Style
	AgentOfflineStyle lipgloss.Style

	// Review document styles.
	DiffFileStyle     lipgloss.Style
	DiffHunkStyle     lipgloss.Style
	DiffAddedStyle    lipgloss.Style
	DiffRemovedStyle  lipgloss.Style
	DiffContextStyle  lipgloss.Style
	DiffLineNumStyle  lipgloss.Style
	DiffSelectedStyle lipgloss.Style
	CommentMarkStyle  lipgloss.Style
	CommentTextStyle  lipgloss.Style
)

// ColorPool is used for deterministic color hashing of agent kinds.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	SelectItemStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	GitAdditionsStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	GitDeletionsStyle = lipgloss.NewStyle().Foreground(ColorError)
	GitCleanStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	GitDirtyStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	GitLoadingStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	AgentWorkingStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	AgentWaitingStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	AgentIdleStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	AgentOfflineStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	DiffFileStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DiffHunkStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	DiffAddedStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	DiffRemovedStyle = lipgloss.NewStyle().Foreground(ColorError)
	DiffContextStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	DiffLineNumStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	DiffSelectedStyle = lipgloss.NewStyle().Background(ColorSurface)
	CommentMarkStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	CommentTextStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
		ColorMuted,
	}
}

// SetThemeByName activates a built-in theme. Unknown names keep the default
// and report false.
func SetThemeByName(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		SetTheme(themes[DefaultTheme])
		return false
	}
	SetTheme(p)
	return true
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
