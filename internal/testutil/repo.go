package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// Repo builds fixture repositories commit by commit
type Repo struct {
	t        testing.TB
	Git      *git.Repository
	Path     string
	worktree *git.Worktree
	clock    time.Time
}

// NewDiskRepo initializes a repository in a temporary directory
func NewDiskRepo(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return newRepo(t, repo, dir)
}

// NewMemoryRepo initializes a repository with in-memory storage and worktree
func NewMemoryRepo(t testing.TB) *Repo {
	t.Helper()

	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	return newRepo(t, repo, "memory://")
}

func newRepo(t testing.TB, repo *git.Repository, path string) *Repo {
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	return &Repo{
		t:        t,
		Git:      repo,
		Path:     path,
		worktree: worktree,
		clock:    time.Date(2012, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Email returns the fixture email address for an author name
func Email(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
}

// Author returns the "Name <email>" identity commits by name are recorded with
func Author(name string) string {
	return fmt.Sprintf("%s <%s>", name, Email(name))
}

// Write creates or overwrites a file and stages it
func (r *Repo) Write(path, content string) *Repo {
	r.t.Helper()

	err := util.WriteFile(r.worktree.Filesystem, path, []byte(content), 0o644)
	require.NoError(r.t, err)

	_, err = r.worktree.Add(path)
	require.NoError(r.t, err)
	return r
}

// Remove deletes a file and stages the deletion
func (r *Repo) Remove(path string) *Repo {
	r.t.Helper()

	_, err := r.worktree.Remove(path)
	require.NoError(r.t, err)
	return r
}

// Move renames a file and stages the rename
func (r *Repo) Move(from, to string) *Repo {
	r.t.Helper()

	_, err := r.worktree.Move(from, to)
	require.NoError(r.t, err)
	return r
}

// Commit records the staged changes as the named author and returns the hash
func (r *Repo) Commit(author, message string) string {
	r.t.Helper()
	return r.commit(author, message, nil)
}

// Merge records a commit with the given parents, regardless of HEAD
func (r *Repo) Merge(author, message string, parents ...string) string {
	r.t.Helper()
	require.GreaterOrEqual(r.t, len(parents), 2, "a merge needs at least two parents")
	return r.commit(author, message, parents)
}

func (r *Repo) commit(author, message string, parents []string) string {
	r.clock = r.clock.Add(time.Minute)
	sig := &object.Signature{
		Name:  author,
		Email: Email(author),
		When:  r.clock,
	}

	opts := &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	}
	for _, p := range parents {
		opts.Parents = append(opts.Parents, plumbing.NewHash(p))
	}

	hash, err := r.worktree.Commit(message, opts)
	require.NoError(r.t, err)
	return hash.String()
}

// Checkout switches to branch, creating it at HEAD when create is set
func (r *Repo) Checkout(branch string, create bool) *Repo {
	r.t.Helper()

	err := r.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	require.NoError(r.t, err)
	return r
}

// Branch returns the short name of the current branch
func (r *Repo) Branch() string {
	r.t.Helper()

	head, err := r.Git.Head()
	require.NoError(r.t, err)
	return head.Name().Short()
}

// Linear builds a root commit followed by one commit per author, each
// touching its own file. It returns the hashes oldest first.
func (r *Repo) Linear(authors ...string) []string {
	r.t.Helper()

	hashes := []string{r.Write("README.md", "fixture\n").Commit("root", "Initial commit")}
	for i, author := range authors {
		path := fmt.Sprintf("file%d.txt", i)
		r.Write(path, fmt.Sprintf("content %d\n", i))
		hashes = append(hashes, r.Commit(author, fmt.Sprintf("Commit %d", i)))
	}
	return hashes
}
