package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"

	apperrors "gitsift/pkg/errors"
)

var (
	// Check if output supports colors
	supportsColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Color functions
	ColorSuccess = colorFunc(ansi.Green)
	ColorError   = colorFunc(ansi.Red)
	ColorWarning = colorFunc(ansi.Yellow)
	ColorInfo    = colorFunc(ansi.Cyan)
	ColorBold    = colorFunc("default+b")
	ColorDim     = colorFunc("default+h")
)

// SetColor forces colored output on or off
func SetColor(enabled bool) {
	supportsColor = enabled
	color.NoColor = !enabled
}

// ColorEnabled reports whether output is currently colored
func ColorEnabled() bool {
	return supportsColor
}

// colorFunc returns a function that colors text if supported
func colorFunc(style string) func(string) string {
	return func(text string) string {
		if supportsColor {
			return ansi.Color(text, style)
		}
		return text
	}
}

// ShowHeader writes a title underlined to its own width
func ShowHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n", ColorBold(title), strings.Repeat("=", len(title)))
}

// ShowError writes a formatted error message. Application errors print the
// full message, including any context wrapped around them, followed by their
// code, cause and suggestions. Anything else prints its text plus a tip when
// one is known.
func ShowError(w io.Writer, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message := strings.Replace(err.Error(), appErr.Error(), appErr.Message, 1)
		fmt.Fprintf(w, "%s %s\n", ColorError("ERROR:"), message)
		if appErr.Code != "" {
			fmt.Fprintf(w, "  %s\n", ColorDim("code: "+string(appErr.Code)))
		}
		if appErr.Cause != nil {
			fmt.Fprintf(w, "  %s\n", ColorDim("cause: "+appErr.Cause.Error()))
		}
		for _, s := range appErr.Suggestions {
			fmt.Fprintf(w, "  %s %s\n", ColorInfo("TIP:"), s)
		}
		return
	}

	lines := strings.Split(err.Error(), "\n")
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintf(w, "%s %s\n", ColorError("ERROR:"), line)
		} else {
			fmt.Fprintf(w, "  %s\n", ColorDim(line))
		}
	}

	if suggestion := getSuggestion(err.Error()); suggestion != "" {
		fmt.Fprintf(w, "  %s %s\n", ColorInfo("TIP:"), suggestion)
	}
}

// ShowWarning writes a warning message
func ShowWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ColorWarning("WARNING:"), message)
}

// ShowSuccess writes a success message
func ShowSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ColorSuccess("OK:"), message)
}

// getSuggestion returns helpful suggestions based on error messages
func getSuggestion(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "repository does not exist"):
		return "Run inside a git working copy or pass --repo"
	case strings.Contains(lower, "reference not found"):
		return "Check the branch name with 'git branch -a'"
	case strings.Contains(lower, "object not found"):
		return "The commit may only exist in another clone; fetch it first"
	case strings.Contains(lower, "permission denied"):
		return "Check you can read the repository's .git directory"
	default:
		return ""
	}
}
