package ui

import (
	"fmt"
	"io"
	"strings"

	"gitsift/internal/git"
)

// DiffPrinter writes one summary line per classified change
type DiffPrinter struct {
	w io.Writer
}

// NewDiffPrinter creates a printer writing to w
func NewDiffPrinter(w io.Writer) *DiffPrinter {
	return &DiffPrinter{w: w}
}

// Print writes entries as "Kind: path" lines, renames as "Renamed: old -> new"
func (p *DiffPrinter) Print(entries []git.Entry) error {
	for _, e := range entries {
		line := e.String()
		if prefix, detail, ok := strings.Cut(line, " "); ok {
			line = kindColor(e.Kind)(prefix) + " " + detail
		}

		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return fmt.Errorf("failed to write diff summary: %w", err)
		}
	}
	return nil
}

// PrintTotals writes a one-line count of entries per kind
func (p *DiffPrinter) PrintTotals(entries []git.Entry) error {
	counts := map[git.ChangeKind]int{}
	for _, e := range entries {
		counts[e.Kind]++
	}

	_, err := fmt.Fprintf(p.w, "%s %d added, %d deleted, %d renamed, %d modified\n",
		ColorBold(fmt.Sprintf("%d changes:", len(entries))),
		counts[git.Added], counts[git.Deleted], counts[git.Renamed], counts[git.Modified])
	return err
}

func kindColor(kind git.ChangeKind) func(string) string {
	switch kind {
	case git.Added:
		return ColorSuccess
	case git.Deleted:
		return ColorError
	case git.Renamed:
		return ColorInfo
	default:
		return ColorWarning
	}
}
