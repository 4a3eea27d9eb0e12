package ui

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitsift/internal/git"
	apperrors "gitsift/pkg/errors"
)

// stubAskOne answers every prompt with fn for the duration of a test
func stubAskOne(t *testing.T, fn func(p survey.Prompt, response interface{}) error) {
	t.Helper()

	original := askOne
	askOne = func(p survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		return fn(p, response)
	}
	t.Cleanup(func() { askOne = original })
}

func sampleCommits() []git.Commit {
	when := time.Date(2012, time.March, 1, 9, 0, 0, 0, time.UTC)
	return []git.Commit{
		{
			Hash:       "1234567890abcdef1234567890abcdef12345678",
			AuthorName: "Alice",
			Parents:    []string{"p1", "p2"},
			When:       when,
			Message:    "Merge branch 'feature'\n\nBrings in the feature",
		},
		{
			Hash:       "abcdef1234567890abcdef1234567890abcdef12",
			AuthorName: "Bob",
			Parents:    []string{"p0"},
			When:       when.Add(-time.Hour),
			Message:    "Fix bug",
		},
	}
}

func TestFormatCommit(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short subject", "Fix bug", "Fix bug"},
		{"multi-line message", "Fix bug\n\nThis is a detailed description", "Fix bug"},
		{"empty message", "", ""},
		{"exactly 50 chars", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{
			"long subject truncated",
			"This is a very long commit message that should be truncated to fit within the display limit",
			"This is a very long commit message that should ...",
		},
		{
			"multibyte subject truncated on rune boundaries",
			strings.Repeat("é", 60),
			strings.Repeat("é", 47) + "...",
		},
		{"exactly 50 multibyte chars", strings.Repeat("日", 50), strings.Repeat("日", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commit := git.Commit{
				Hash:       "1234567890abcdef1234567890abcdef12345678",
				AuthorName: "Test Author",
				Parents:    []string{"p"},
				Message:    tt.message,
			}

			option := FormatCommit(commit)
			assert.Equal(t, "1234567", option.ShortHash)
			assert.Equal(t, tt.want, option.Subject)
			assert.Equal(t, "Test Author", option.Author)
			assert.LessOrEqual(t, utf8.RuneCountInString(option.Subject), 50)
			assert.True(t, utf8.ValidString(option.Subject))
			assert.False(t, option.Merge)
		})
	}
}

func TestCommitOptionLabel(t *testing.T) {
	commits := sampleCommits()
	now := commits[0].When.Add(2 * time.Hour)

	assert.Equal(t, "1234567 - Merge branch 'feature' (Alice, 2 hours ago) [merge]", FormatCommit(commits[0]).Label(now))
	assert.Equal(t, "abcdef1 - Fix bug (Bob, 3 hours ago)", FormatCommit(commits[1]).Label(now))
}

func TestSelectCommit(t *testing.T) {
	commits := sampleCommits()

	var shown []string
	stubAskOne(t, func(p survey.Prompt, response interface{}) error {
		sel, ok := p.(*survey.Select)
		require.True(t, ok)
		shown = sel.Options
		assert.Equal(t, "Pick the base commit:", sel.Message)

		*(response.(*int)) = 1
		return nil
	})

	hash, err := SelectCommit("Pick the base commit:", commits)
	require.NoError(t, err)
	assert.Equal(t, commits[1].Hash, hash)
	require.Len(t, shown, 2)
	assert.True(t, strings.HasPrefix(shown[1], "abcdef1 - Fix bug (Bob,"))
}

func TestSelectCommitEmpty(t *testing.T) {
	_, err := SelectCommit("Pick:", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no commits available")
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetErrorCode(err))
}

func TestSelectCommitInterrupted(t *testing.T) {
	stubAskOne(t, func(survey.Prompt, interface{}) error {
		return terminal.InterruptErr
	})

	_, err := SelectCommit("Pick:", sampleCommits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestSelectCommitPromptError(t *testing.T) {
	boom := errors.New("no tty")
	stubAskOne(t, func(survey.Prompt, interface{}) error {
		return boom
	})

	_, err := SelectCommit("Pick:", sampleCommits())
	assert.ErrorIs(t, err, boom)
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{6 * 24 * time.Hour, "6 days ago"},
		{7 * 24 * time.Hour, "1 week ago"},
		{21 * 24 * time.Hour, "3 weeks ago"},
		{30 * 24 * time.Hour, "1 month ago"},
		{330 * 24 * time.Hour, "11 months ago"},
		{365 * 24 * time.Hour, "1 year ago"},
		{3 * 365 * 24 * time.Hour, "3 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatRelativeTime(now.Add(-tt.duration), now))
		})
	}
}
