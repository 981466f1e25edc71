package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestSelectField(t *testing.T) {
	t.Run("default selection", func(t *testing.T) {
		f := NewSelectField("Agent", []string{"claude", "codex", "aider"}, "codex")
		assert.Equal(t, "codex", f.Value())
	})

	t.Run("no default selects first", func(t *testing.T) {
		f := NewSelectField("Agent", []string{"claude", "codex"}, "")
		assert.Equal(t, "claude", f.Value())
	})

	t.Run("empty options", func(t *testing.T) {
		f := NewSelectField("Agent", nil, "")
		assert.Equal(t, "", f.Value())
	})

	t.Run("navigation while focused", func(t *testing.T) {
		f := NewSelectField("Agent", []string{"claude", "codex", "aider"}, "")
		f.Focus()
		f.Update(tea.KeyPressMsg(tea.Key{Text: "j", Code: 'j'}))
		assert.Equal(t, "codex", f.Value())
	})

	t.Run("ignores input while blurred", func(t *testing.T) {
		f := NewSelectField("Agent", []string{"claude", "codex"}, "")
		f.Update(tea.KeyPressMsg(tea.Key{Text: "j", Code: 'j'}))
		assert.Equal(t, "claude", f.Value())
	})

	t.Run("view shows label and options", func(t *testing.T) {
		f := NewSelectField("Agent", []string{"claude", "codex"}, "")
		view := f.View()
		assert.Contains(t, view, "Agent")
		assert.Contains(t, view, "claude")
		assert.Contains(t, view, "codex")
	})
}
