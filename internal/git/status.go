package git

import (
	"slices"

	"github.com/go-git/go-git/v5"

	apperrors "gitsift/pkg/errors"
)

// WorktreeStatus is the state of the working copy relative to HEAD
type WorktreeStatus struct {
	status git.Status
}

// Status reads the working copy status. Bare repositories have no worktree.
func (r *Repository) Status() (WorktreeStatus, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return WorktreeStatus{}, apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to get worktree").
			WithContext("path", r.path)
	}

	status, err := worktree.Status()
	if err != nil {
		return WorktreeStatus{}, apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to read worktree status").
			WithContext("path", r.path)
	}

	return WorktreeStatus{status: status}, nil
}

// Added returns paths newly staged in the index
func (s WorktreeStatus) Added() []string {
	return s.match(func(fs *git.FileStatus) bool {
		return fs.Staging == git.Added
	})
}

// Deleted returns paths removed from the index or the working tree
func (s WorktreeStatus) Deleted() []string {
	return s.match(func(fs *git.FileStatus) bool {
		return fs.Staging == git.Deleted || fs.Worktree == git.Deleted
	})
}

// Changed returns tracked paths modified in the index or the working tree
func (s WorktreeStatus) Changed() []string {
	return s.match(func(fs *git.FileStatus) bool {
		if fs.Staging == git.Added || fs.Staging == git.Deleted || fs.Worktree == git.Deleted {
			return false
		}
		return fs.Staging == git.Modified || fs.Worktree == git.Modified ||
			fs.Staging == git.Renamed || fs.Staging == git.Copied
	})
}

// Untracked returns paths not known to the index
func (s WorktreeStatus) Untracked() []string {
	return s.match(func(fs *git.FileStatus) bool {
		return fs.Worktree == git.Untracked
	})
}

// All returns Added, Deleted and Changed paths, in that order
func (s WorktreeStatus) All() []string {
	all := s.Added()
	all = append(all, s.Deleted()...)
	return append(all, s.Changed()...)
}

// IsClean reports whether nothing is staged, modified or untracked
func (s WorktreeStatus) IsClean() bool {
	return s.status.IsClean()
}

func (s WorktreeStatus) match(pred func(*git.FileStatus) bool) []string {
	var paths []string
	for path, fs := range s.status {
		if pred(fs) {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths
}
