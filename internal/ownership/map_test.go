package ownership

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMapAddAndCount(t *testing.T) {
	m := Map{}
	k := Key{Author: "alice", Path: "a.txt"}

	assert.Equal(t, 0, m.Count(k))
	m.Add(k, 1)
	m.Add(k, 2)
	assert.Equal(t, 3, m.Count(k))
	assert.Equal(t, 1, m.Len())
}

func TestMapEntriesOrder(t *testing.T) {
	m := Map{
		{Author: "bob", Path: "b.txt"}:   1,
		{Author: "alice", Path: "z.txt"}: 4,
		{Author: "alice", Path: "a.txt"}: 2,
	}

	want := []Entry{
		{Key: Key{Author: "alice", Path: "a.txt"}, Count: 2},
		{Key: Key{Author: "alice", Path: "z.txt"}, Count: 4},
		{Key: Key{Author: "bob", Path: "b.txt"}, Count: 1},
	}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapMerge(t *testing.T) {
	m := Map{{Author: "alice", Path: "a.txt"}: 1}
	m.Merge(Map{
		{Author: "alice", Path: "a.txt"}: 2,
		{Author: "bob", Path: "b.txt"}:   5,
	})

	want := Map{
		{Author: "alice", Path: "a.txt"}: 3,
		{Author: "bob", Path: "b.txt"}:   5,
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapReport(t *testing.T) {
	m := Map{
		{Author: "alice", Path: "a.txt"}: 60,
		{Author: "bob", Path: "b.txt"}:   10,
	}

	tests := []struct {
		name      string
		threshold int
		want      []string
	}{
		{"above threshold", 50, []string{"60 : alice::a.txt"}},
		{"threshold is exclusive", 60, []string{}},
		{"everything", 0, []string{"60 : alice::a.txt", "10 : bob::b.txt"}},
		{"just below lower count", 9, []string{"60 : alice::a.txt", "10 : bob::b.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, m.Report(tt.threshold)); diff != "" {
				t.Errorf("Report(%d) mismatch (-want +got):\n%s", tt.threshold, diff)
			}
		})
	}
}

func TestMapFilterTiesOrderedByKey(t *testing.T) {
	m := Map{
		{Author: "carol", Path: "c.txt"}: 3,
		{Author: "alice", Path: "b.txt"}: 3,
		{Author: "alice", Path: "a.txt"}: 3,
		{Author: "dave", Path: "d.txt"}:  7,
	}

	got := m.Report(1)
	assert.Equal(t, []string{
		"7 : dave::d.txt",
		"3 : alice::a.txt",
		"3 : alice::b.txt",
		"3 : carol::c.txt",
	}, got)
}

func TestMapReportEmpty(t *testing.T) {
	assert.Empty(t, Map{}.Report(0))
	assert.Empty(t, Map{}.Entries())
}

func TestMapTotals(t *testing.T) {
	m := Map{
		{Author: "alice", Path: "a.txt"}: 2,
		{Author: "alice", Path: "b.txt"}: 3,
		{Author: "bob", Path: "b.txt"}:   1,
	}
	assert.Equal(t, map[string]int{"alice": 5, "bob": 1}, m.Totals())
}

func TestKeyString(t *testing.T) {
	k := Key{Author: "Alice <alice@example.com>", Path: "dir/a.txt"}
	assert.Equal(t, "Alice <alice@example.com>::dir/a.txt", k.String())
	assert.Equal(t, "4 : Alice <alice@example.com>::dir/a.txt", Entry{Key: k, Count: 4}.String())
}
