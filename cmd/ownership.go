package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gitsift/internal/git"
	"gitsift/internal/ownership"
	"gitsift/internal/ui"
	"gitsift/pkg/models"
)

var ownershipFormat string

var ownershipCmd = &cobra.Command{
	Use:   "ownership",
	Short: "Count commits per author and file",
	Long: `Walk every commit of a branch and count, for each author and file, how
many commits by that author changed the file. Root commits and merges are
skipped. With --threshold, the entries with more commits than the threshold
are listed after the full map, highest first.`,
	Example: `  gitsift ownership
  gitsift ownership --branch main --threshold 50 --workers 4`,
	Args: cobra.NoArgs,
	RunE: runOwnership,
}

func init() {
	ownershipCmd.Flags().StringVarP(&ownershipFormat, "format", "f", "table", "output format: table, text or json")
	addSettingFlags(ownershipCmd, "branch", "page-size", "threshold", "workers")
	rootCmd.AddCommand(ownershipCmd)
}

func runOwnership(cmd *cobra.Command, args []string) error {
	if err := checkFormat(ownershipFormat, "table", "text", "json"); err != nil {
		return err
	}

	repo, err := openRepository("")
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	opts := []ownership.Option{
		ownership.WithWorkers(settings.Workers),
		ownership.WithLogger(logger),
	}
	if settings.Workers > 1 {
		// go-git storage is not safe for concurrent readers
		opts = append(opts, ownership.WithSourceFactory(func() (ownership.ChangeSource, error) {
			handle, err := git.Open(repo.Path())
			if err != nil {
				return nil, err
			}
			return git.NewClassifier(handle), nil
		}))
	}

	aggregator := ownership.NewAggregator(git.NewClassifier(repo), opts...)
	m, err := aggregator.Aggregate(ctx, newHistoryReader(repo).Commits(ctx, settings.Branch))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	threshold := settings.Threshold

	switch ownershipFormat {
	case "json":
		return writeJSON(out, ownershipReport(settings.Branch, threshold, m))
	case "text":
		for _, e := range m.Entries() {
			fmt.Fprintln(out, e)
		}
	default:
		ui.NewOwnershipTable(out, threshold).Render(m)
	}

	if threshold > 0 {
		fmt.Fprintln(out)
		ui.ShowHeader(out, fmt.Sprintf("More than %d commits", threshold))
		for _, line := range m.Report(threshold) {
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

func ownershipReport(branch string, threshold int, m ownership.Map) models.OwnershipReport {
	if branch == "" {
		branch = "HEAD"
	}

	report := models.OwnershipReport{
		Branch:      branch,
		Threshold:   threshold,
		GeneratedAt: time.Now().UTC(),
		Entries:     ownershipRecords(m.Entries()),
	}
	if threshold > 0 {
		report.AboveLimit = ownershipRecords(m.Filter(threshold))
	}
	return report
}

func ownershipRecords(entries []ownership.Entry) []models.OwnershipRecord {
	records := make([]models.OwnershipRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, models.OwnershipRecord{Author: e.Author, Path: e.Path, Count: e.Count})
	}
	return records
}
