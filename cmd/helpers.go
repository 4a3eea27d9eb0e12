package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"gitsift/internal/common"
	"gitsift/internal/git"
	apperrors "gitsift/pkg/errors"
)

// openRepository opens path, falling back to the configured repository
func openRepository(path string) (*git.Repository, error) {
	if path == "" {
		path = settings.Repo
	}

	cleaned, err := common.CleanPath(path)
	if err != nil {
		return nil, apperrors.RepositoryNotFound(path, err)
	}
	return git.Open(cleaned)
}

func newHistoryReader(repo *git.Repository) *git.HistoryReader {
	return git.NewHistoryReader(repo,
		git.WithPageSize(settings.PageSize),
		git.WithHistoryLogger(logger),
	)
}

// checkFormat rejects --format values outside allowed
func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return apperrors.New(apperrors.ErrCodeInvalidInput, fmt.Sprintf("unknown format %q", format)).
		WithContext("format", format).
		WithSuggestions(fmt.Sprintf("Use one of: %v", allowed))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// addSettingFlags registers the setting-backed flags a command accepts. The
// values are read back through loadSettings.
func addSettingFlags(cmd *cobra.Command, names ...string) {
	flags := cmd.Flags()
	for _, name := range names {
		switch name {
		case "branch":
			flags.StringP("branch", "b", "", "branch to walk (default: HEAD)")
		case "host":
			flags.String("host", "", "hosting service for commit links (default: github.com)")
		case "page-size":
			flags.Int("page-size", 0, "commits read per history page (default: 10)")
		case "threshold":
			flags.IntP("threshold", "t", 0, "list entries with more commits than this; 0 disables the listing")
		case "workers":
			flags.IntP("workers", "w", 0, "diff commits with this many workers (default: 1)")
		}
	}
}
