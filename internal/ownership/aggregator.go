package ownership

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"gitsift/internal/git"
)

// ChangeSource lists the paths changed between a commit and its parent.
// *git.Classifier satisfies it.
type ChangeSource interface {
	ChangedPaths(ctx context.Context, parent, commit string) ([]string, error)
}

// SourceFactory opens an independent ChangeSource for one parallel worker
type SourceFactory func() (ChangeSource, error)

// Aggregator builds ownership maps from commit history
type Aggregator struct {
	source  ChangeSource
	factory SourceFactory
	workers int
	logger  *logrus.Logger
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithWorkers sets how many commits are diffed concurrently. One or less
// walks the history sequentially.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		a.workers = n
	}
}

// WithSourceFactory gives every parallel worker its own source instead of
// sharing the one passed to NewAggregator. Use it when the source is not safe
// for concurrent use.
func WithSourceFactory(factory SourceFactory) Option {
	return func(a *Aggregator) {
		a.factory = factory
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *logrus.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAggregator creates an aggregator that diffs commits with source
func NewAggregator(source ChangeSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:  source,
		workers: 1,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type walkStats struct {
	tallied int
	roots   int
	merges  int
}

func (s *walkStats) skip(c git.Commit) {
	if c.IsRoot() {
		s.roots++
	} else {
		s.merges++
	}
}

// Aggregate counts, for every commit with exactly one parent, one commit per
// path changed relative to that parent, keyed by the commit's author. Roots
// and merges contribute nothing. The first error aborts the walk and no
// partial map is returned.
func (a *Aggregator) Aggregate(ctx context.Context, commits iter.Seq2[git.Commit, error]) (Map, error) {
	start := time.Now()

	var (
		m     Map
		stats walkStats
		err   error
	)
	if a.workers > 1 {
		m, stats, err = a.aggregateParallel(ctx, commits)
	} else {
		m, stats, err = a.aggregateSequential(ctx, commits)
	}
	if err != nil {
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"tallied":        stats.tallied,
		"skipped_roots":  stats.roots,
		"skipped_merges": stats.merges,
		"keys":           m.Len(),
		"workers":        max(a.workers, 1),
		"duration_ms":    time.Since(start).Milliseconds(),
	}).Debug("aggregated ownership")

	return m, nil
}

func (a *Aggregator) aggregateSequential(
	ctx context.Context,
	commits iter.Seq2[git.Commit, error],
) (Map, walkStats, error) {
	m := Map{}
	var stats walkStats

	for commit, err := range commits {
		if err != nil {
			return nil, stats, fmt.Errorf("error iterating commits: %w", err)
		}

		if !commit.IsSinglyParented() {
			a.logger.WithField("commit", commit.ShortHash()).Debug("skipping commit without a single parent")
			stats.skip(commit)
			continue
		}

		if err := tally(ctx, a.source, m, commit); err != nil {
			return nil, stats, err
		}
		stats.tallied++
	}

	return m, stats, nil
}

// aggregateParallel fans commits out to a fixed set of workers, each
// counting into its own shard. Shards are merged once every worker is done.
func (a *Aggregator) aggregateParallel(
	ctx context.Context,
	commits iter.Seq2[git.Commit, error],
) (Map, walkStats, error) {
	sources := make([]ChangeSource, a.workers)
	for i := range sources {
		sources[i] = a.source
		if a.factory == nil {
			continue
		}

		source, err := a.factory()
		if err != nil {
			return nil, walkStats{}, fmt.Errorf("could not open change source for worker %d: %w", i, err)
		}
		sources[i] = source
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan git.Commit)

	shards := make([]Map, a.workers)
	for i := range shards {
		shard := Map{}
		shards[i] = shard
		source := sources[i]

		g.Go(func() error {
			for commit := range jobs {
				if err := tally(gctx, source, shard, commit); err != nil {
					return err
				}
			}
			return nil
		})
	}

	var stats walkStats
	g.Go(func() error {
		defer close(jobs)

		for commit, err := range commits {
			if err != nil {
				return fmt.Errorf("error iterating commits: %w", err)
			}

			if !commit.IsSinglyParented() {
				stats.skip(commit)
				continue
			}

			select {
			case jobs <- commit:
				stats.tallied++
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	m := Map{}
	for _, shard := range shards {
		m.Merge(shard)
	}
	return m, stats, nil
}

func tally(ctx context.Context, source ChangeSource, m Map, commit git.Commit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	paths, err := source.ChangedPaths(ctx, commit.Parents[0], commit.Hash)
	if err != nil {
		return fmt.Errorf("could not diff commit %s against its parent: %w", commit.ShortHash(), err)
	}

	for _, path := range paths {
		m.Add(Key{Author: commit.Author, Path: path}, 1)
	}
	return nil
}
