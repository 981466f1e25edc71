package git

import "github.com/bmatcuk/doublestar/v4"

// FilterIgnored drops paths matching any of the glob patterns. Patterns
// use doublestar syntax, so "**/dist/**" and "*.lock" both work. Invalid
// patterns never match.
func FilterIgnored(paths, patterns []string) []string {
	if len(patterns) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !matchesAny(p, patterns) {
			out = append(out, p)
		}
	}
	return out
}

func matchesAny(path string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, path); err == nil && ok {
			return true
		}
	}
	return false
}
