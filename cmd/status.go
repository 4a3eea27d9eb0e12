package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gitsift/internal/ui"
)

var statusUntracked bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show working-copy changes grouped as added, deleted and changed",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusUntracked, "untracked", "u", false, "also list untracked files")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	repo, err := openRepository("")
	if err != nil {
		return err
	}

	status, err := repo.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if status.IsClean() && (!statusUntracked || len(status.Untracked()) == 0) {
		ui.ShowSuccess(out, "working copy clean")
		return nil
	}

	printGroup(out, "Added", status.Added(), ui.ColorSuccess)
	printGroup(out, "Deleted", status.Deleted(), ui.ColorError)
	printGroup(out, "Changed", status.Changed(), ui.ColorWarning)
	if statusUntracked {
		printGroup(out, "Untracked", status.Untracked(), ui.ColorDim)
	}
	return nil
}

func printGroup(w io.Writer, title string, paths []string, paint func(string) string) {
	if len(paths) == 0 {
		return
	}

	fmt.Fprintf(w, "%s:\n", ui.ColorBold(title))
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", paint(p))
	}
}
