// Package ownership tallies how many commits each author made to each path.
package ownership

import (
	"cmp"
	"fmt"
	"slices"
)

// Key identifies one (author, path) pair
type Key struct {
	Author string
	Path   string
}

func (k Key) String() string {
	return k.Author + "::" + k.Path
}

func (k Key) compare(o Key) int {
	return cmp.Or(cmp.Compare(k.Author, o.Author), cmp.Compare(k.Path, o.Path))
}

// Entry is a key with its commit count
type Entry struct {
	Key
	Count int
}

// String renders the entry as a report line: "<count> : <author>::<path>"
func (e Entry) String() string {
	return fmt.Sprintf("%d : %s", e.Count, e.Key)
}

// Map counts commits per (author, path)
type Map map[Key]int

// Add increments the count for k by n
func (m Map) Add(k Key, n int) {
	m[k] += n
}

// Count returns the count for k, zero when absent
func (m Map) Count(k Key) int {
	return m[k]
}

func (m Map) Len() int {
	return len(m)
}

// Merge adds every count in other to m
func (m Map) Merge(other Map) {
	for k, n := range other {
		m[k] += n
	}
}

// Entries returns all entries ordered by author, then path
func (m Map) Entries() []Entry {
	entries := make([]Entry, 0, len(m))
	for k, n := range m {
		entries = append(entries, Entry{Key: k, Count: n})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return a.Key.compare(b.Key)
	})
	return entries
}

// Filter returns the entries with a count strictly greater than threshold,
// highest count first
func (m Map) Filter(threshold int) []Entry {
	var entries []Entry
	for k, n := range m {
		if n > threshold {
			entries = append(entries, Entry{Key: k, Count: n})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), a.Key.compare(b.Key))
	})
	return entries
}

// Report renders Filter(threshold) as report lines
func (m Map) Report(threshold int) []string {
	entries := m.Filter(threshold)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines
}

// Totals sums the counts per author
func (m Map) Totals() map[string]int {
	totals := map[string]int{}
	for k, n := range m {
		totals[k.Author] += n
	}
	return totals
}
