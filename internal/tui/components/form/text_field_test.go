package form

import (
	"errors"
	"regexp"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestTextField(t *testing.T) {
	t.Run("default value", func(t *testing.T) {
		f := NewTextField("Branch", "name", "feat/wrap")
		assert.Equal(t, "feat/wrap", f.Value())
		assert.Equal(t, "Branch", f.Label())
	})

	t.Run("ignores input while blurred", func(t *testing.T) {
		f := NewTextField("Branch", "", "")
		f.Update(tea.KeyPressMsg(tea.Key{Text: "x", Code: 'x'}))
		assert.Equal(t, "", f.Value())
	})

	t.Run("accepts input while focused", func(t *testing.T) {
		f := NewTextField("Branch", "", "")
		f.Focus()
		f.Update(tea.KeyPressMsg(tea.Key{Text: "a", Code: 'a'}))
		f.Update(tea.KeyPressMsg(tea.Key{Text: "b", Code: 'b'}))
		assert.Equal(t, "ab", f.Value())
	})

	t.Run("blur validates", func(t *testing.T) {
		f := NewTextField("Branch", "", "").WithValidation(FieldValidation{Required: true})
		f.Focus()
		f.Blur()
		assert.Contains(t, f.View(), "required")
	})

	t.Run("typing clears a stale error", func(t *testing.T) {
		f := NewTextField("Branch", "", "").WithValidation(FieldValidation{Required: true})
		f.Focus()
		assert.Equal(t, "required", f.Err())

		f.Update(tea.KeyPressMsg(tea.Key{Text: "x", Code: 'x'}))
		assert.Equal(t, "", f.Err())
	})
}

func TestFieldValidation(t *testing.T) {
	tests := []struct {
		name  string
		rules FieldValidation
		value string
		want  string
	}{
		{"no rules pass everything", FieldValidation{}, "", ""},
		{"required empty", FieldValidation{Required: true}, "", "required"},
		{"required filled", FieldValidation{Required: true}, "x", ""},
		{"min length", FieldValidation{MinLength: 3}, "ab", "minimum 3 characters"},
		{"max length", FieldValidation{MaxLength: 2}, "abc", "maximum 2 characters"},
		{"optional empty skips length rules", FieldValidation{MinLength: 3}, "", ""},
		{"pattern mismatch", FieldValidation{Pattern: regexp.MustCompile(`^[a-z/-]+$`)}, "Feat Wrap", "must match pattern: ^[a-z/-]+$"},
		{"pattern match", FieldValidation{Pattern: regexp.MustCompile(`^[a-z/-]+$`)}, "feat/wrap", ""},
		{"custom rejects", FieldValidation{Custom: func(string) error { return errors.New("reserved sequence") }}, "x", "reserved sequence"},
		{"custom accepts", FieldValidation{Custom: func(string) error { return nil }}, "x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rules.ValidateText(tt.value))
		})
	}
}
