// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// BranchName validates a git branch name. It enforces the subset of
// git's check-ref-format rules users actually hit, so bad names fail
// before git is invoked.
func BranchName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("branch is required")
	}
	if strings.ContainsAny(name, " \t~^:?*[\\") {
		return fmt.Errorf("branch contains invalid characters")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch cannot start with '-'")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") || strings.Contains(name, "//") {
		return fmt.Errorf("branch has a malformed path component")
	}
	if strings.Contains(name, "..") || strings.Contains(name, "@{") {
		return fmt.Errorf("branch contains a reserved sequence")
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("branch cannot end with '.' or '.lock'")
	}
	return nil
}
