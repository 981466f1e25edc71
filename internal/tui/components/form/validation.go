package form

import (
	"fmt"
	"regexp"
)

// FieldValidation holds validation rules for a text field.
type FieldValidation struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	// Custom runs after the rule checks; a non-nil error is shown as the
	// field error.
	Custom func(string) error
}

// ValidateText checks a text value against the validation rules.
// Returns an empty string when the value passes.
func (v FieldValidation) ValidateText(value string) string {
	if v.Required && value == "" {
		return "required"
	}
	if value == "" {
		return ""
	}
	if v.MinLength > 0 && len(value) < v.MinLength {
		return fmt.Sprintf("minimum %d characters", v.MinLength)
	}
	if v.MaxLength > 0 && len(value) > v.MaxLength {
		return fmt.Sprintf("maximum %d characters", v.MaxLength)
	}
	if v.Pattern != nil && !v.Pattern.MatchString(value) {
		return fmt.Sprintf("must match pattern: %s", v.Pattern.String())
	}
	if v.Custom != nil {
		if err := v.Custom(value); err != nil {
			return err.Error()
		}
	}
	return ""
}
