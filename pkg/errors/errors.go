package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Repository errors (1xxx)
	ErrCodeRepositoryNotFound     ErrorCode = "GS1001"
	ErrCodeRefNotFound            ErrorCode = "GS1002"
	ErrCodeInvalidCommitReference ErrorCode = "GS1003"

	// Input errors (2xxx)
	ErrCodeInsufficientArguments ErrorCode = "GS2001"
	ErrCodeConfigInvalid         ErrorCode = "GS2002"
	ErrCodeInvalidInput          ErrorCode = "GS2003"

	// System errors (9xxx)
	ErrCodeGit      ErrorCode = "GS9001"
	ErrCodeInternal ErrorCode = "GS9002"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// SeverityError is set on every AppError
const SeverityError ErrorSeverity = "ERROR"

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrRepositoryNotFound     = &AppError{Code: ErrCodeRepositoryNotFound}
	ErrRefNotFound            = &AppError{Code: ErrCodeRefNotFound}
	ErrInvalidCommitReference = &AppError{Code: ErrCodeInvalidCommitReference}
	ErrInsufficientArguments  = &AppError{Code: ErrCodeInsufficientArguments}
	ErrConfigInvalid          = &AppError{Code: ErrCodeConfigInvalid}
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Severity: SeverityError,
		Context:  make(map[string]interface{}),
		Stack:    captureStack(),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit its context
	var ae *AppError
	if errors.As(err, &ae) {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// RepositoryNotFound reports a path that is not a readable git repository
func RepositoryNotFound(path string, cause error) *AppError {
	return Wrap(cause, ErrCodeRepositoryNotFound, fmt.Sprintf("No git repository found at %s", path)).
		WithContext("path", path).
		WithSuggestions(
			"Check that the path points at a git working copy or bare repository",
			"Pass the repository with --repo or set it in the config file",
		)
}

// RefNotFound reports a branch or ref that does not resolve
func RefNotFound(ref string, cause error) *AppError {
	err := New(ErrCodeRefNotFound, fmt.Sprintf("Branch or ref %q not found", ref)).
		WithContext("ref", ref).
		WithSuggestions(
			fmt.Sprintf("Verify branch '%s' exists", ref),
			"Use 'git branch -a' to list branches",
		)
	err.Cause = cause
	return err
}

// InvalidCommitReference reports a commit id or revision that does not resolve
func InvalidCommitReference(rev string, cause error) *AppError {
	err := New(ErrCodeInvalidCommitReference, fmt.Sprintf("Commit %q does not resolve in this repository", rev)).
		WithContext("revision", rev)
	err.Cause = cause
	return err
}

// InsufficientArguments reports a command invoked with too few positional arguments
func InsufficientArguments(usage string, want, got int) *AppError {
	return New(ErrCodeInsufficientArguments,
		fmt.Sprintf("You haven't given enough arguments: want %d, got %d", want, got)).
		WithContext("usage", usage).
		WithSuggestions("Usage: " + usage)
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'gitsift config init' to write a default config file",
		)
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
