package cmd

import (
	"github.com/spf13/cobra"

	"gitsift/internal/git"
	"gitsift/internal/ui"
	"gitsift/pkg/models"
)

// selectorDepth is how many recent commits --interactive offers
const selectorDepth = 50

var (
	diffOnly        string
	diffInteractive bool
	diffFormat      string
	diffTotals      bool

	// selectCommit is replaced in tests
	selectCommit = ui.SelectCommit
)

var diffCmd = &cobra.Command{
	Use:   "diff [<from> [<to>]]",
	Short: "Summarize the files changed between two commits",
	Long: `Classify every path changed between two commits as Added, Deleted,
Renamed or Modified. Without arguments the last commit is compared with its
parent (HEAD^..HEAD).`,
	Example: `  gitsift diff
  gitsift diff HEAD~5 HEAD --only AD
  gitsift diff --interactive`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffOnly, "only", "ADRM", "change kinds to include, any of A, D, R, M")
	diffCmd.Flags().BoolVarP(&diffInteractive, "interactive", "i", false, "pick both commits from recent history")
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text", "output format: text or json")
	diffCmd.Flags().BoolVar(&diffTotals, "totals", false, "print a count per change kind after the summary")
	addSettingFlags(diffCmd, "branch", "page-size")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if err := checkFormat(diffFormat, "text", "json"); err != nil {
		return err
	}

	kinds, err := git.ParseKinds(diffOnly)
	if err != nil {
		return err
	}

	repo, err := openRepository("")
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	from, to := "HEAD^", "HEAD"
	if len(args) > 0 {
		from = args[0]
	}
	if len(args) > 1 {
		to = args[1]
	}

	if diffInteractive {
		recent, err := newHistoryReader(repo).Page(ctx, settings.Branch, 0, selectorDepth)
		if err != nil {
			return err
		}
		if from, err = selectCommit("Compare from commit:", recent); err != nil {
			return err
		}
		if to, err = selectCommit("Compare to commit:", recent); err != nil {
			return err
		}
	}

	entries, err := git.NewClassifier(repo).Filtered(ctx, from, to, kinds)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if diffFormat == "json" {
		return writeJSON(out, diffReport(from, to, entries))
	}

	printer := ui.NewDiffPrinter(out)
	if err := printer.Print(entries); err != nil {
		return err
	}
	if diffTotals {
		return printer.PrintTotals(entries)
	}
	return nil
}

func diffReport(from, to string, entries []git.Entry) models.DiffReport {
	report := models.DiffReport{From: from, To: to, Changes: make([]models.DiffRecord, 0, len(entries))}
	for _, e := range entries {
		report.Changes = append(report.Changes, models.DiffRecord{
			Kind:    e.Kind.String(),
			Path:    e.Path(),
			OldPath: e.OldPath,
			NewPath: e.NewPath,
		})
	}
	return report
}
