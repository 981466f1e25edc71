package git

import "strings"

// ExtractOwnerRepo parses a remote URL into its last two path segments.
// Handles SSH (git@host:owner/repo.git) and HTTP(S) forms; for nested
// groups the immediate parent counts as the owner.
func ExtractOwnerRepo(remote string) (owner, repo string) {
	s := strings.TrimSuffix(strings.TrimSpace(remote), ".git")
	if s == "" {
		return "", ""
	}

	var path string
	switch {
	case strings.Contains(s, "://"):
		rest := s[strings.Index(s, "://")+3:]
		i := strings.Index(rest, "/")
		if i == -1 {
			return "", ""
		}
		path = rest[i+1:]
	case strings.Contains(s, ":"):
		path = s[strings.LastIndex(s, ":")+1:]
	default:
		return "", ""
	}

	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 {
		return "", ""
	}
	return segs[len(segs)-2], segs[len(segs)-1]
}

// ExtractRepoName returns the repository name from a remote URL.
func ExtractRepoName(remote string) string {
	_, repo := ExtractOwnerRepo(remote)
	return repo
}
