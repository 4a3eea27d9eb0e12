package performance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitsift/internal/git"
	"gitsift/internal/ownership"
	"gitsift/internal/testutil"
)

// historyFixture commits size changes spread over a handful of authors and files
func historyFixture(tb testing.TB, size int) *testutil.Repo {
	tb.Helper()

	fixture := testutil.NewDiskRepo(tb)
	fixture.Write("README.md", "perf\n").Commit("root", "Initial commit")
	for i := 0; i < size; i++ {
		author := fmt.Sprintf("dev%d", i%5)
		fixture.
			Write(fmt.Sprintf("pkg/file%d.go", i%20), fmt.Sprintf("package pkg // %d\n", i)).
			Commit(author, fmt.Sprintf("Change %d", i))
	}
	return fixture
}

func aggregate(tb testing.TB, path string, workers int) (ownership.Map, time.Duration) {
	tb.Helper()

	repo, err := git.Open(path)
	require.NoError(tb, err)

	opts := []ownership.Option{ownership.WithWorkers(workers)}
	if workers > 1 {
		opts = append(opts, ownership.WithSourceFactory(func() (ownership.ChangeSource, error) {
			handle, err := git.Open(path)
			if err != nil {
				return nil, err
			}
			return git.NewClassifier(handle), nil
		}))
	}

	ctx := context.Background()
	start := time.Now()
	m, err := ownership.NewAggregator(git.NewClassifier(repo), opts...).
		Aggregate(ctx, git.NewHistoryReader(repo, git.WithPageSize(50)).Commits(ctx, ""))
	require.NoError(tb, err)
	return m, time.Since(start)
}

// TestOwnershipPerformance checks that parallel aggregation agrees with the
// sequential walk and finishes within a generous bound
func TestOwnershipPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	scenarios := []struct {
		name    string
		commits int
		workers []int
		maxTime time.Duration
	}{
		{name: "small history", commits: 50, workers: []int{1, 4}, maxTime: 10 * time.Second},
		{name: "medium history", commits: 300, workers: []int{1, 2, 8}, maxTime: 60 * time.Second},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			fixture := historyFixture(t, sc.commits)

			baseline, _ := aggregate(t, fixture.Path, 1)
			total := 0
			for _, n := range baseline.Totals() {
				total += n
			}
			assert.Equal(t, sc.commits, total)

			for _, workers := range sc.workers {
				m, elapsed := aggregate(t, fixture.Path, workers)
				assert.Equal(t, baseline, m, "workers=%d", workers)
				assert.Less(t, elapsed, sc.maxTime, "workers=%d took %v", workers, elapsed)
				t.Logf("%d commits with %d workers: %v", sc.commits, workers, elapsed)
			}
		})
	}
}

func BenchmarkAggregate(b *testing.B) {
	fixture := historyFixture(b, 200)

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for b.Loop() {
				aggregate(b, fixture.Path, workers)
			}
		})
	}
}
