package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	apperrors "gitsift/pkg/errors"
)

// Repository is a read-only handle over a local git repository
type Repository struct {
	path string
	repo *git.Repository
}

// Open opens the repository at path. Parent directories are searched for a
// .git directory so any path inside a working copy works.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, apperrors.RepositoryNotFound(path, err)
	}

	return &Repository{
		path: path,
		repo: repo,
	}, nil
}

// FromGoGit wraps an already opened go-git repository, e.g. one backed by
// in-memory storage.
func FromGoGit(repo *git.Repository, path string) *Repository {
	return &Repository{path: path, repo: repo}
}

// Path returns the path the repository was opened from
func (r *Repository) Path() string {
	return r.path
}

// ResolveBranch returns the tip of the named branch. Local branches win over
// remote tracking branches; anything else is tried as a revision so that
// "HEAD" and tags work too. An empty name means HEAD.
func (r *Repository) ResolveBranch(name string) (plumbing.Hash, error) {
	if name == "" || name == "HEAD" {
		head, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, apperrors.RefNotFound("HEAD", err)
		}
		return head.Hash(), nil
	}

	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(name),
		plumbing.NewRemoteReferenceName("origin", name),
	}
	for _, refName := range candidates {
		ref, err := r.repo.Reference(refName, true)
		if err == nil {
			return ref.Hash(), nil
		}
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, apperrors.Wrap(err, apperrors.ErrCodeGit,
				fmt.Sprintf("Failed to read reference %s", refName))
		}
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return plumbing.ZeroHash, apperrors.RefNotFound(name, err)
	}
	return *hash, nil
}

// ResolveCommit resolves a full or abbreviated hash, or a revision expression
// such as HEAD^ or main~2, to a commit object.
func (r *Repository) ResolveCommit(rev string) (*object.Commit, error) {
	if rev == "" {
		return nil, apperrors.InvalidCommitReference(rev, nil)
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, apperrors.InvalidCommitReference(rev, err)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, apperrors.InvalidCommitReference(rev, err)
	}
	return commit, nil
}

// CurrentBranch returns the short name of the branch HEAD points at
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", apperrors.RefNotFound("HEAD", err)
	}

	refName := head.Name()
	if refName.IsBranch() {
		return refName.Short(), nil
	}

	return "", fmt.Errorf("HEAD is not pointing to a branch")
}

// log opens a history walk starting at from
func (r *Repository) log(from plumbing.Hash) (object.CommitIter, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to get commit log")
	}
	return iter, nil
}
