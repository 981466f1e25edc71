package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestDialog(t *testing.T) {
	t.Run("creation focuses first field", func(t *testing.T) {
		f1 := NewTextField("Name", "", "")
		f2 := NewTextField("Branch", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"name", "branch"})

		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
	})

	t.Run("empty dialog", func(t *testing.T) {
		d := NewDialog("Empty", []Field{}, []string{})
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
		assert.Empty(t, d.FormValues())
	})

	t.Run("tab advances focus", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		f3 := NewTextField("C", "", "")
		d := NewDialog("Test", []Field{f1, f2, f3}, []string{"a", "b", "c"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.False(t, f1.Focused())
		assert.True(t, f2.Focused())
		assert.False(t, f3.Focused())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.False(t, f2.Focused())
		assert.True(t, f3.Focused())
	})

	t.Run("tab past last field submits", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, d.Submitted())
	})

	t.Run("shift+tab retreats focus", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f2.Focused())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
	})

	t.Run("shift+tab on first field stays", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
		assert.True(t, f1.Focused())
		assert.False(t, d.Submitted())
	})

	t.Run("enter on last field submits", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, d.Submitted())
	})

	t.Run("escape cancels", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
		assert.True(t, d.Cancelled())
		assert.False(t, d.Submitted())
	})

	t.Run("required field blocks submit", func(t *testing.T) {
		f1 := NewTextField("Branch", "", "").WithValidation(FieldValidation{Required: true})
		d := NewDialog("Test", []Field{f1}, []string{"branch"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.False(t, d.Submitted())
		assert.True(t, f1.Focused())
		assert.Contains(t, f1.View(), "required")

		d.Update(tea.KeyPressMsg(tea.Key{Text: "x", Code: 'x'}))
		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, d.Submitted())
	})

	t.Run("tab does not leave an invalid field", func(t *testing.T) {
		f1 := NewTextField("Branch", "", "").WithValidation(FieldValidation{Required: true})
		f2 := NewSelectField("Agent", []string{"claude", "codex"}, "claude")
		d := NewDialog("Test", []Field{f1, f2}, []string{"branch", "agent"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f1.Focused())
		assert.False(t, d.Submitted())
	})

	t.Run("FormValues extracts all values", func(t *testing.T) {
		f1 := NewTextField("Branch", "", "feat/wrap")
		f2 := NewSelectField("Agent", []string{"claude", "codex"}, "codex")
		d := NewDialog("Test", []Field{f1, f2}, []string{"branch", "agent"})

		vals := d.FormValues()
		assert.Equal(t, "feat/wrap", vals["branch"])
		assert.Equal(t, "codex", vals["agent"])
	})

	t.Run("view renders title fields and help", func(t *testing.T) {
		f1 := NewTextField("Branch", "branch name", "")
		f2 := NewSelectField("Agent", []string{"claude", "codex"}, "")
		d := NewDialog("New Worktree", []Field{f1, f2}, []string{"branch", "agent"})

		view := d.View()
		assert.Contains(t, view, "New Worktree")
		assert.Contains(t, view, "Branch")
		assert.Contains(t, view, "Agent")
		assert.Contains(t, view, "tab")
	})
}
