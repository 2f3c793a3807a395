// Package rerrors defines the error taxonomy of spec.md §7: invalid input,
// I/O failure, parse failure, and internal inconsistency. Each is a typed
// value carrying enough context to format a useful message and to let
// callers distinguish "surface to the user" from "log and continue".
//
// Named rerrors (not errors) so that a file can import both this package
// and the standard library's errors package without aliasing either; the
// teacher's own internal/errors package has the identical naming pressure.
package rerrors

import (
	"fmt"
)

// Kind tags which branch of spec.md §7's taxonomy an error belongs to.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindIO           Kind = "io"
	KindParse        Kind = "parse"
	KindInternal     Kind = "internal"
)

// InvalidInputError is case 1: an empty path, a non-absolute path where one
// is required, or an empty symbol name. Surfaced as JSON-RPC -32602.
type InvalidInputError struct {
	Field   string
	Reason  string
}

func NewInvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Kind() Kind { return KindInvalidInput }

// IOError is case 2: the file or directory could not be read.
type IOError struct {
	Path       string
	Operation  string
	Underlying error
}

func NewIOError(op, path string, err error) *IOError {
	return &IOError{Operation: op, Path: path, Underlying: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

func (e *IOError) Unwrap() error { return e.Underlying }

func (e *IOError) Kind() Kind { return KindIO }

// SyntaxError is case 3: the parser could not produce an AST. Line/Column
// are 1-based and zero when the parser can't pin down a location.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func (e *SyntaxError) Kind() Kind { return KindParse }

// InternalError is case 4: a programming-bug-grade inconsistency (a
// visitor emitting a non-positive line, a nil tree reaching the merge
// step). These are the only unwinds the core allows; everywhere else,
// functions return result-or-error values.
type InternalError struct {
	Operation string
	Detail    string
}

func NewInternalError(op, detail string) *InternalError {
	return &InternalError{Operation: op, Detail: detail}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal inconsistency in %s: %s", e.Operation, e.Detail)
}

func (e *InternalError) Kind() Kind { return KindInternal }
