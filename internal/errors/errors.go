// Package errors provides the domain error taxonomy shared by the index
// builder and the index consumer. Every user-facing failure maps to a fixed
// human-readable message keyed by its code; raw causes stay in logs.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library helpers for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Code represents a machine-readable error code.
type Code string

const (
	// CodeParse covers documents (or fetched artifacts) that could not be
	// decoded. Recovered locally: a bad post is dropped, a bad fetch falls
	// back to a caller-supplied default.
	CodeParse Code = "PARSE"
	// CodeDirectoryMissing covers an absent or unreadable year directory.
	// Recovered locally: the year contributes zero posts.
	CodeDirectoryMissing Code = "DIRECTORY_MISSING"
	// CodeIO covers fatal build failures: unreadable root, unwritable output.
	CodeIO Code = "IO"
	// CodeNetwork covers a runtime fetch that exhausted its retries.
	CodeNetwork Code = "NETWORK"
	// CodeNotFound covers a post id with no matching index entry.
	CodeNotFound Code = "NOT_FOUND"
)

// UserMessage returns the fixed human-readable message for a code.
func (c Code) UserMessage() string {
	switch c {
	case CodeNetwork:
		return "Could not load the blog index. Check your connection and retry."
	case CodeNotFound:
		return "Post not found."
	case CodeParse:
		return "The blog index could not be read."
	case CodeDirectoryMissing:
		return "A blog year directory is missing."
	default:
		return "Something went wrong."
	}
}

// Error is a domain error with a code, a message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// UserMessage returns the fixed message for this error's code.
func (e *Error) UserMessage() string {
	return e.Code.UserMessage()
}

// New creates a domain error.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error around a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// NotFound creates a CodeNotFound error.
func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, format, args...)
}

// Network creates a CodeNetwork error around a cause.
func Network(cause error, format string, args ...any) *Error {
	return Wrap(CodeNetwork, cause, format, args...)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
