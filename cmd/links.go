package cmd

import (
	"github.com/spf13/cobra"

	"gitsift/internal/links"
	apperrors "gitsift/pkg/errors"
)

var linksCmd = &cobra.Command{
	Use:   "links <repo-path> <owner> <repo-name>",
	Short: "Print every commit on a branch as a markdown link",
	Long: `Walk the history of a branch and print one markdown link per commit,
newest first, pointing at the commit page of the hosted repository.`,
	Example: "  gitsift links ~/src/dragonballer jbranchaud dragonballer",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 3 {
			return apperrors.InsufficientArguments(cmd.UseLine(), 3, len(args))
		}
		return cobra.MaximumNArgs(3)(cmd, args)
	},
	RunE: runLinks,
}

func init() {
	addSettingFlags(linksCmd, "branch", "host", "page-size")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	linker := links.New(args[1], args[2])
	if settings.Host != "" {
		linker.Host = settings.Host
	}
	if err := linker.Validate(); err != nil {
		return err
	}

	repo, err := openRepository(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	n, err := linker.Write(ctx, cmd.OutOrStdout(), newHistoryReader(repo).Commits(ctx, settings.Branch))
	if err != nil {
		return err
	}

	logger.WithField("links", n).Debug("wrote commit links")
	return nil
}
