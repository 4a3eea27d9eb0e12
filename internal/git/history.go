package git

import (
	"context"
	"errors"
	"io"
	"iter"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"

	"gitsift/internal/iterutils"
	apperrors "gitsift/pkg/errors"
)

// DefaultPageSize is the number of commits requested per page
const DefaultPageSize = 10

// HistoryReader lists the commits reachable from a branch tip
type HistoryReader struct {
	repo     *Repository
	pageSize int
	logger   *logrus.Logger
}

// HistoryOption configures a HistoryReader
type HistoryOption func(*HistoryReader)

// WithPageSize sets how many commits are read per page
func WithPageSize(n int) HistoryOption {
	return func(h *HistoryReader) {
		if n > 0 {
			h.pageSize = n
		}
	}
}

// WithHistoryLogger sets the logger used for debug output
func WithHistoryLogger(logger *logrus.Logger) HistoryOption {
	return func(h *HistoryReader) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHistoryReader creates a reader over repo
func NewHistoryReader(repo *Repository, opts ...HistoryOption) *HistoryReader {
	h := &HistoryReader{
		repo:     repo,
		pageSize: DefaultPageSize,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Page returns at most limit commits, skipping the first offset commits of
// the walk from the branch tip.
func (h *HistoryReader) Page(ctx context.Context, branch string, offset, limit int) ([]Commit, error) {
	tip, err := h.repo.ResolveBranch(branch)
	if err != nil {
		return nil, err
	}

	cur := &logCursor{repo: h.repo, tip: tip}
	defer cur.close()

	return cur.page(ctx, offset, limit)
}

// Commits returns every commit reachable from the branch tip in history walk
// order. The sequence reads one page at a time and ends at the first empty
// page. Ranging over it again restarts the walk.
func (h *HistoryReader) Commits(ctx context.Context, branch string) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		tip, err := h.repo.ResolveBranch(branch)
		if err != nil {
			yield(Commit{}, err)
			return
		}

		cur := &logCursor{repo: h.repo, tip: tip}
		defer cur.close()

		start := time.Now()
		pages := 0
		count := 0

		fetch := func(offset, limit int) ([]Commit, error) {
			pages++
			return cur.page(ctx, offset, limit)
		}

		for commit, err := range iterutils.Paginate(h.pageSize, fetch) {
			if !yield(commit, err) {
				return
			}
			if err != nil {
				return
			}
			count++
		}

		h.logger.WithFields(logrus.Fields{
			"branch":      branch,
			"commits":     count,
			"pages":       pages,
			"page_size":   h.pageSize,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("walked commit history")
	}
}

// AllCommits collects Commits into a slice
func (h *HistoryReader) AllCommits(ctx context.Context, branch string) ([]Commit, error) {
	return iterutils.Collect(h.Commits(ctx, branch))
}

// logCursor keeps one history walk open between pages. A request at the
// position the walk stopped at continues it; any other offset reopens the
// walk and skips ahead.
type logCursor struct {
	repo *Repository
	tip  plumbing.Hash
	iter object.CommitIter
	pos  int
	done bool
}

func (c *logCursor) page(ctx context.Context, offset, limit int) ([]Commit, error) {
	if c.iter == nil || c.pos != offset {
		if err := c.reopen(ctx, offset); err != nil {
			return nil, err
		}
	}

	var page []Commit
	for !c.done && len(page) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		commit, err := c.iter.Next()
		if errors.Is(err, io.EOF) {
			c.done = true
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to iterate commits")
		}

		page = append(page, NewCommit(commit))
		c.pos++
	}

	return page, nil
}

func (c *logCursor) reopen(ctx context.Context, offset int) error {
	c.close()

	walk, err := c.repo.log(c.tip)
	if err != nil {
		return err
	}
	c.iter = walk
	c.pos = 0
	c.done = false

	for c.pos < offset {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := c.iter.Next()
		if errors.Is(err, io.EOF) {
			c.done = true
			return nil
		}
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeGit, "Failed to iterate commits")
		}
		c.pos++
	}

	return nil
}

func (c *logCursor) close() {
	if c.iter != nil {
		c.iter.Close()
		c.iter = nil
	}
}
