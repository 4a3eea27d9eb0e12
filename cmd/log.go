package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitsift/internal/git"
	"gitsift/pkg/models"
)

var logFormat string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List the commits of a branch with their parent count and author",
	Long: `List every commit reachable from a branch, newest first, as
"[<parent count>] <sha>" followed by the indented author.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVarP(&logFormat, "format", "f", "text", "output format: text or json")
	addSettingFlags(logCmd, "branch", "page-size")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	if err := checkFormat(logFormat, "text", "json"); err != nil {
		return err
	}

	repo, err := openRepository("")
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	commits := newHistoryReader(repo).Commits(ctx, settings.Branch)

	if logFormat == "json" {
		records := []models.CommitRecord{}
		for c, err := range commits {
			if err != nil {
				return err
			}
			records = append(records, commitRecord(c))
		}
		return writeJSON(out, records)
	}

	for c, err := range commits {
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatLogEntry(c))
	}
	return nil
}

func formatLogEntry(c git.Commit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s\n", len(c.Parents), c.Hash)
	fmt.Fprintf(&b, "    %s\n", c.Author)
	return b.String()
}

func commitRecord(c git.Commit) models.CommitRecord {
	parents := c.Parents
	if parents == nil {
		parents = []string{}
	}
	return models.CommitRecord{
		Hash:    c.Hash,
		Author:  c.Author,
		Parents: parents,
		Date:    c.When,
		Subject: c.Subject(),
	}
}
