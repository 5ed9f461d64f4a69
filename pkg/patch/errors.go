package patch

import (
	"errors"
	"fmt"
	"strings"
)

// Stable codes carried by Error so callers can dispatch on the failure class
// without string matching.
const (
	// CodeInvalidPatch marks malformed patch text: missing markers,
	// unsupported directives, bad hunk lines.
	CodeInvalidPatch = "INVALID_PATCH"
	// CodeMissingFile marks a delete or update whose target does not exist.
	CodeMissingFile = "MISSING_FILE"
	// CodeHunkNotFound marks a hunk whose original block could not be
	// located in the target file.
	CodeHunkNotFound = "HUNK_NOT_FOUND"
	// CodeIOFailure marks filesystem errors surfaced while applying.
	CodeIOFailure = "IO_FAILURE"
)

// Error represents a structured failure while parsing or applying a patch.
// It satisfies the error interface so it can be returned directly from the
// Apply* helpers.
type Error struct {
	Code    string
	Path    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "patch error"
}

func invalidf(path, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidPatch, Path: path, Message: fmt.Sprintf(format, args...)}
}

// FormatError renders an error into a single diagnostic suitable for
// surfacing to end users, appending the offending path when the message does
// not already name it.
func FormatError(err error) string {
	if err == nil {
		return "Unknown error occurred."
	}
	var pe *Error
	if errors.As(err, &pe) && pe.Path != "" && !strings.Contains(pe.Message, pe.Path) {
		return fmt.Sprintf("%s (%s)", pe.Error(), pe.Path)
	}
	return err.Error()
}
