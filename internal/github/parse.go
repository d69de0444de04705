// Where: internal/github/parse.go
// What: Extract owner/repo from GitHub URLs.
// Why: Callers paste clone or browser URLs, not API paths.
package github

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRepoURL is returned when owner/repo cannot be parsed.
var ErrInvalidRepoURL = errors.New("invalid GitHub repository URL")

// ParseRepoURL accepts https and http URLs, scp-style "git@github.com:owner/repo.git",
// ssh:// URLs and bare "owner/repo". Trailing ".git" and extra path segments are dropped.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", "", fmt.Errorf("%w: empty", ErrInvalidRepoURL)
	}

	var path string
	switch {
	case strings.HasPrefix(value, "git@"):
		_, rest, ok := strings.Cut(value, ":")
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
		}
		path = rest
	case strings.Contains(value, "://"):
		parsed, parseErr := url.Parse(value)
		if parseErr != nil || parsed.Host == "" {
			return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
		}
		path = parsed.Path
	case strings.HasPrefix(value, "github.com/"):
		path = strings.TrimPrefix(value, "github.com/")
	default:
		path = value
	}

	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
	}
	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
	}
	return owner, repo, nil
}

// PullRequestURL returns the browser URL of a pull request.
func PullRequestURL(owner, repo string, number int) string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, number)
}
