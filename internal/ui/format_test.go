package ui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "gitsift/pkg/errors"
)

// withColor sets color support for the duration of a test
func withColor(t *testing.T, enabled bool) {
	t.Helper()

	original := supportsColor
	SetColor(enabled)
	t.Cleanup(func() { SetColor(original) })
}

func TestColorFunc(t *testing.T) {
	funcs := []func(string) string{
		ColorSuccess,
		ColorError,
		ColorWarning,
		ColorInfo,
		ColorBold,
		ColorDim,
	}

	t.Run("with color support", func(t *testing.T) {
		withColor(t, true)
		for _, fn := range funcs {
			assert.NotEqual(t, "test text", fn("test text"))
			assert.Contains(t, fn("test text"), "test text")
		}
	})

	t.Run("without color support", func(t *testing.T) {
		withColor(t, false)
		for _, fn := range funcs {
			assert.Equal(t, "test text", fn("test text"))
		}
		assert.False(t, ColorEnabled())
	})
}

func TestShowHeader(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	ShowHeader(&buf, "Ownership")
	assert.Equal(t, "Ownership\n=========\n", buf.String())
}

func TestShowError(t *testing.T) {
	withColor(t, false)

	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "application error",
			err:      apperrors.RefNotFound("nope", errors.New("reference not found")),
			contains: []string{"ERROR:", "code: GS1002", "cause: reference not found", "TIP:"},
		},
		{
			name:     "plain error with known tip",
			err:      errors.New("repository does not exist"),
			contains: []string{"ERROR: repository does not exist", "TIP: Run inside a git working copy"},
		},
		{
			name:     "multiline error",
			err:      errors.New("first line\nsecond line"),
			contains: []string{"ERROR: first line", "  second line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ShowError(&buf, tt.err)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestShowErrorKeepsWrappedContext(t *testing.T) {
	withColor(t, false)

	inner := apperrors.InvalidCommitReference("abc1234", errors.New("object not found"))
	err := fmt.Errorf("could not diff commit abc1234 against its parent: %w", inner)

	var buf bytes.Buffer
	ShowError(&buf, err)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "ERROR: could not diff commit abc1234 against its parent: "+inner.Message, lines[0])
	assert.Contains(t, buf.String(), "code: GS1003")
	assert.Contains(t, buf.String(), "cause: object not found")
	assert.NotContains(t, buf.String(), "[GS1003]")
}

func TestShowErrorDirectAppError(t *testing.T) {
	withColor(t, false)

	err := apperrors.New(apperrors.ErrCodeInvalidInput, "no commits available")

	var buf bytes.Buffer
	ShowError(&buf, err)
	assert.Equal(t, "ERROR: no commits available\n  code: GS2003\n", buf.String())
}

func TestShowErrorWithoutTip(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	ShowError(&buf, errors.New("unknown error occurred"))
	assert.Equal(t, "ERROR: unknown error occurred\n", buf.String())
}

func TestShowWarningAndSuccess(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	ShowWarning(&buf, "no commits")
	ShowSuccess(&buf, "wrote .gitsift.yaml")
	assert.Equal(t, "WARNING: no commits\nOK: wrote .gitsift.yaml\n", buf.String())
}

func TestGetSuggestion(t *testing.T) {
	assert.NotEmpty(t, getSuggestion("Reference not found"))
	assert.NotEmpty(t, getSuggestion("object not found"))
	assert.NotEmpty(t, getSuggestion("open .git: permission denied"))
	assert.Empty(t, getSuggestion("something else"))
}
