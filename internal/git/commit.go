package git

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is an immutable view of a commit read from history
type Commit struct {
	Hash        string
	Author      string // "Name <email>"
	AuthorName  string
	AuthorEmail string
	Parents     []string
	TreeHash    string
	When        time.Time
	Message     string
}

// NewCommit converts a go-git commit object
func NewCommit(c *object.Commit) Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Hash:        c.Hash.String(),
		Author:      FormatAuthor(c.Author.Name, c.Author.Email),
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		Parents:     parents,
		TreeHash:    c.TreeHash.String(),
		When:        c.Author.When,
		Message:     c.Message,
	}
}

// FormatAuthor renders an author identity the way git does
func FormatAuthor(name, email string) string {
	if email == "" {
		return name
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsSinglyParented reports whether the commit is neither a root nor a merge
func (c Commit) IsSinglyParented() bool {
	return len(c.Parents) == 1
}

func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Subject is the first line of the commit message
func (c Commit) Subject() string {
	message := strings.TrimSpace(c.Message)
	if idx := strings.Index(message, "\n"); idx >= 0 {
		message = message[:idx]
	}
	return message
}

func (c Commit) String() string {
	return fmt.Sprintf(
		"{ hash:%s author:%s parents:%d date:%s subject:%s }",
		c.ShortHash(),
		c.Author,
		len(c.Parents),
		c.When.Format("Jan 2, 2006"),
		c.Subject(),
	)
}
