// Package links renders commit hashes as markdown links to a hosted
// repository's commit pages.
package links

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"gitsift/internal/git"
	apperrors "gitsift/pkg/errors"
)

// DefaultHost is used when a Linker has no host set
const DefaultHost = "github.com"

// Linker builds commit links for one hosted repository
type Linker struct {
	Host  string
	Owner string
	Repo  string
}

// New creates a linker for owner/repo on the default host
func New(owner, repo string) *Linker {
	return &Linker{Host: DefaultHost, Owner: owner, Repo: repo}
}

// Validate reports whether the owner and repository name are usable in a URL
func (l *Linker) Validate() error {
	for field, value := range map[string]string{"owner": l.Owner, "repo": l.Repo} {
		if strings.TrimSpace(value) == "" {
			return apperrors.New(apperrors.ErrCodeInvalidInput, field+" must not be empty").
				WithContext("field", field)
		}
		if strings.ContainsAny(value, "/ ") {
			return apperrors.New(apperrors.ErrCodeInvalidInput, fmt.Sprintf("%s %q must not contain slashes or spaces", field, value)).
				WithContext("field", field)
		}
	}
	return nil
}

// BaseURL returns https://<host>/<owner>/<repo>/commit
func (l *Linker) BaseURL() string {
	host := strings.TrimSuffix(l.Host, "/")
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("https://%s/%s/%s/commit", host, l.Owner, l.Repo)
}

// Link returns the markdown link for one commit hash: [sha](base/sha)
func (l *Linker) Link(hash string) string {
	return fmt.Sprintf("[%s](%s/%s)", hash, l.BaseURL(), hash)
}

// Write prints one link per commit, each followed by a blank line, in the
// order the sequence yields them. It returns the number of links written.
func (l *Linker) Write(ctx context.Context, w io.Writer, commits iter.Seq2[git.Commit, error]) (int, error) {
	n := 0
	for commit, err := range commits {
		if err != nil {
			return n, err
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}

		if _, err := fmt.Fprintf(w, "%s\n\n", l.Link(commit.Hash)); err != nil {
			return n, fmt.Errorf("failed to write link: %w", err)
		}
		n++
	}
	return n, nil
}
