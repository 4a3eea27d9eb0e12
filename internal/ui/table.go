package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"gitsift/internal/ownership"
)

// OwnershipTable renders ownership entries as an aligned table
type OwnershipTable struct {
	w         io.Writer
	threshold int
}

// NewOwnershipTable creates a table writing to w. Counts above threshold are
// highlighted; zero highlights nothing.
func NewOwnershipTable(w io.Writer, threshold int) *OwnershipTable {
	return &OwnershipTable{w: w, threshold: threshold}
}

// Render writes one row per entry of m, ordered by author then path,
// followed by a footer with the totals
func (t *OwnershipTable) Render(m ownership.Map) {
	table := tablewriter.NewWriter(t.w)
	table.SetHeader([]string{"Commits", "Author", "Path"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	highlight := color.New(color.FgYellow, color.Bold)
	entries := m.Entries()

	for _, e := range entries {
		count := strconv.Itoa(e.Count)
		if t.threshold > 0 && e.Count > t.threshold {
			count = highlight.Sprint(count)
		}

		table.Append([]string{count, e.Author, e.Path})
	}

	totals := m.Totals()
	total := 0
	for _, n := range totals {
		total += n
	}

	table.SetFooter([]string{
		strconv.Itoa(total),
		fmt.Sprintf("%d authors", len(totals)),
		fmt.Sprintf("%d entries", len(entries)),
	})
	table.Render()
}
