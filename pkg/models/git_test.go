package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffRecordOmitsEmptyPaths(t *testing.T) {
	data, err := json.Marshal(DiffRecord{Kind: "Added", Path: "a.go", NewPath: "a.go"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"Added","path":"a.go","new_path":"a.go"}`, string(data))
}

func TestOwnershipReportJSON(t *testing.T) {
	report := OwnershipReport{
		Branch:      "main",
		Threshold:   50,
		GeneratedAt: time.Date(2012, time.March, 1, 0, 0, 0, 0, time.UTC),
		Entries: []OwnershipRecord{
			{Author: "alice", Path: "a.txt", Count: 60},
			{Author: "bob", Path: "b.txt", Count: 10},
		},
		AboveLimit: []OwnershipRecord{{Author: "alice", Path: "a.txt", Count: 60}},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"branch": "main",
		"threshold": 50,
		"generated_at": "2012-03-01T00:00:00Z",
		"entries": [
			{"author": "alice", "path": "a.txt", "count": 60},
			{"author": "bob", "path": "b.txt", "count": 10}
		],
		"above_threshold": [{"author": "alice", "path": "a.txt", "count": 60}]
	}`, string(data))
}
