package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"gitsift/internal/git"
	apperrors "gitsift/pkg/errors"
)

// askOne is replaced in tests
var askOne = survey.AskOne

// CommitOption is a commit as shown in the selector
type CommitOption struct {
	Hash      string
	ShortHash string
	Subject   string
	Author    string
	Time      time.Time
	Merge     bool
}

// FormatCommit prepares a commit for display
func FormatCommit(commit git.Commit) CommitOption {
	// Truncate long subjects
	subject := commit.Subject()
	if runes := []rune(subject); len(runes) > 50 {
		subject = string(runes[:47]) + "..."
	}

	return CommitOption{
		Hash:      commit.Hash,
		ShortHash: commit.ShortHash(),
		Subject:   subject,
		Author:    commit.AuthorName,
		Time:      commit.When,
		Merge:     commit.IsMerge(),
	}
}

// Label renders the option relative to now
func (o CommitOption) Label(now time.Time) string {
	label := fmt.Sprintf("%s - %s (%s, %s)", o.ShortHash, o.Subject, o.Author, formatRelativeTime(o.Time, now))
	if o.Merge {
		label += " [merge]"
	}
	return label
}

// SelectCommit asks the user to pick one of commits and returns its hash
func SelectCommit(message string, commits []git.Commit) (string, error) {
	if len(commits) == 0 {
		return "", apperrors.New(apperrors.ErrCodeInvalidInput, "no commits available")
	}

	now := time.Now()
	options := make([]string, len(commits))
	for i, c := range commits {
		options[i] = FormatCommit(c).Label(now)
	}

	var selected int
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 10,
	}

	if err := askOne(prompt, &selected); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", fmt.Errorf("commit selection cancelled")
		}
		return "", err
	}

	if selected < 0 || selected >= len(commits) {
		return "", apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("selection %d out of range", selected))
	}
	return commits[selected].Hash, nil
}

// formatRelativeTime formats t relative to now (e.g., "2 hours ago")
func formatRelativeTime(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		return plural(int(duration.Minutes()), "minute")
	case duration < 24*time.Hour:
		return plural(int(duration.Hours()), "hour")
	case duration < 7*24*time.Hour:
		return plural(int(duration.Hours()/24), "day")
	case duration < 30*24*time.Hour:
		return plural(int(duration.Hours()/(24*7)), "week")
	case duration < 365*24*time.Hour:
		return plural(int(duration.Hours()/(24*30)), "month")
	default:
		return plural(int(duration.Hours()/(24*365)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
