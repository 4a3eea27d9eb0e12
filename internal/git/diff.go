package git

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"

	apperrors "gitsift/pkg/errors"
)

// ChangeKind classifies a path-level change between two commits
type ChangeKind int

const (
	Added ChangeKind = iota
	Deleted
	Renamed
	Modified
)

var kindNames = map[ChangeKind]string{
	Added:    "Added",
	Deleted:  "Deleted",
	Renamed:  "Renamed",
	Modified: "Modified",
}

func (k ChangeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Letter is the single-letter code used by git status and --only
func (k ChangeKind) Letter() string {
	return k.String()[:1]
}

// KindSet is a set of change kinds
type KindSet uint8

// AllKinds selects every change
const AllKinds = KindSet(1<<Added | 1<<Deleted | 1<<Renamed | 1<<Modified)

func NewKindSet(kinds ...ChangeKind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s KindSet) Has(k ChangeKind) bool {
	return s&(1<<k) != 0
}

// ParseKinds parses any combination of the letters A, D, R and M
func ParseKinds(letters string) (KindSet, error) {
	var s KindSet
	for _, r := range strings.ToUpper(letters) {
		switch r {
		case 'A':
			s |= NewKindSet(Added)
		case 'D':
			s |= NewKindSet(Deleted)
		case 'R':
			s |= NewKindSet(Renamed)
		case 'M':
			s |= NewKindSet(Modified)
		default:
			return 0, apperrors.New(apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("Unknown change kind %q", string(r))).
				WithContext("kinds", letters).
				WithSuggestions("Use any combination of A, D, R and M")
		}
	}
	return s, nil
}

// Entry is one path-level change. OldPath is empty for additions and NewPath
// is empty for deletions.
type Entry struct {
	Kind    ChangeKind
	OldPath string
	NewPath string
}

// Path is the path a change is attributed to. Renames count towards the new
// path only; the old path's history is not carried across.
func (e Entry) Path() string {
	if e.Kind == Deleted {
		return e.OldPath
	}
	return e.NewPath
}

// String renders the entry as a diff summary line
func (e Entry) String() string {
	if e.Kind == Renamed {
		return fmt.Sprintf("%s: %s -> %s", e.Kind, e.OldPath, e.NewPath)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path())
}

// classify assigns exactly one kind to a tree change
func classify(change *object.Change) Entry {
	from, to := change.From.Name, change.To.Name

	switch {
	case from == "":
		return Entry{Kind: Added, NewPath: to}
	case to == "":
		return Entry{Kind: Deleted, OldPath: from}
	case from != to:
		return Entry{Kind: Renamed, OldPath: from, NewPath: to}
	default:
		return Entry{Kind: Modified, OldPath: from, NewPath: to}
	}
}

// Classifier computes classified diffs between commits
type Classifier struct {
	repo *Repository
}

// NewClassifier creates a classifier over repo
func NewClassifier(repo *Repository) *Classifier {
	return &Classifier{repo: repo}
}

// Diff returns the changes going from commit a to commit b, ordered by path
func (c *Classifier) Diff(ctx context.Context, a, b string) ([]Entry, error) {
	from, err := c.repo.ResolveCommit(a)
	if err != nil {
		return nil, err
	}
	to, err := c.repo.ResolveCommit(b)
	if err != nil {
		return nil, err
	}

	return c.DiffCommits(ctx, from, to)
}

// DiffCommits is Diff over already resolved commits
func (c *Classifier) DiffCommits(ctx context.Context, from, to *object.Commit) ([]Entry, error) {
	fromTree, err := from.Tree()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to get commit tree").
			WithContext("commit", from.Hash.String())
	}
	toTree, err := to.Tree()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to get commit tree").
			WithContext("commit", to.Hash.String())
	}

	opts := *object.DefaultDiffTreeOptions
	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, &opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to get diff").
			WithContext("from", from.Hash.String()).
			WithContext("to", to.Hash.String())
	}

	entries := make([]Entry, 0, len(changes))
	for _, change := range changes {
		entries = append(entries, classify(change))
	}

	slices.SortStableFunc(entries, func(x, y Entry) int {
		return strings.Compare(x.Path(), y.Path())
	})
	return entries, nil
}

// Filtered returns only the changes whose kind is in kinds
func (c *Classifier) Filtered(ctx context.Context, a, b string, kinds KindSet) ([]Entry, error) {
	entries, err := c.Diff(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return Filter(entries, kinds), nil
}

func (c *Classifier) Added(ctx context.Context, a, b string) ([]Entry, error) {
	return c.Filtered(ctx, a, b, NewKindSet(Added))
}

func (c *Classifier) Deleted(ctx context.Context, a, b string) ([]Entry, error) {
	return c.Filtered(ctx, a, b, NewKindSet(Deleted))
}

func (c *Classifier) Renamed(ctx context.Context, a, b string) ([]Entry, error) {
	return c.Filtered(ctx, a, b, NewKindSet(Renamed))
}

func (c *Classifier) Modified(ctx context.Context, a, b string) ([]Entry, error) {
	return c.Filtered(ctx, a, b, NewKindSet(Modified))
}

// ChangedPaths returns the effective path of every change between parent and
// commit
func (c *Classifier) ChangedPaths(ctx context.Context, parent, commit string) ([]string, error) {
	entries, err := c.Diff(ctx, parent, commit)
	if err != nil {
		return nil, err
	}
	return Paths(entries), nil
}

// Filter keeps the entries whose kind is in kinds
func Filter(entries []Entry, kinds KindSet) []Entry {
	var out []Entry
	for _, e := range entries {
		if kinds.Has(e.Kind) {
			out = append(out, e)
		}
	}
	return out
}

// Paths maps entries to their effective paths
func Paths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path())
	}
	return paths
}
