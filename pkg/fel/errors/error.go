package errors

import (
	"fmt"
	"strings"
)

// Type categorizes the kind of error encountered while tokenizing or parsing
// an expression.
type Type string

const (
	TypeSyntax          Type = "syntax"           // Malformed token stream or grammar
	TypeArity           Type = "arity"            // Function called with a bad argument count
	TypeUnknownFunction Type = "unknown-function" // Function name not registered
	TypeCapacity        Type = "capacity"         // Variable table capacity exceeded
)

// Error is a rich expression error with category, byte offset, and an
// optional suggested fix. Offset is the position of the offending character
// or token within the expression source, or -1 when no position applies.
type Error struct {
	Type       Type
	Message    string
	Offset     int
	Suggestion string
}

// New creates an Error with the given category, offset, and message.
func New(errType Type, offset int, message string) *Error {
	return &Error{Type: errType, Message: message, Offset: offset}
}

// Newf creates an Error with a formatted message.
func Newf(errType Type, offset int, format string, args ...any) *Error {
	return New(errType, offset, fmt.Sprintf(format, args...))
}

// WithSuggestion attaches a suggested fix and returns the error.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// Error implements the error interface.
// Format: "[syntax] unexpected ')' at offset 5 (did you mean ...)".
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.Offset >= 0 {
		sb.WriteString(fmt.Sprintf(" at offset %d", e.Offset))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Suggestion))
	}

	return sb.String()
}

// Is reports whether target is an *Error of the same Type. It lets callers
// match categories with errors.Is without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}
