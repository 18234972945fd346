// Package errors provides typed error handling for the filter core.
//
// This package defines domain-specific error types that enable better
// error classification and user feedback when a filter expression is
// malformed. All errors support the standard errors.Is() and
// errors.As() functions for error inspection.
package errors

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrSyntax indicates a malformed filter expression: an unknown
	// action keyword, a malformed integer, an empty token.
	ErrSyntax ErrorKind = iota
	// ErrSemantic indicates a well-formed but disallowed combination,
	// such as retval= appearing in fault= syntax.
	ErrSemantic
	// ErrRegex indicates a regex compile or execute failure.
	ErrRegex
	// ErrUnsupported indicates a feature the caller asked for that this
	// build does not support (e.g. an unresolvable personality).
	ErrUnsupported
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrSemantic:
		return "semantic error"
	case ErrRegex:
		return "regex error"
	case ErrUnsupported:
		return "unsupported"
	default:
		return "unknown error"
	}
}

// FilterError represents an error that occurred while parsing or
// evaluating a filter expression.
type FilterError struct {
	// Op is the operation that failed (e.g. "trace", "inject", "fd").
	Op string
	// Token is the offending token or sub-expression, if applicable.
	Token string
	// Err is the underlying error.
	Err error
	// Kind is the error classification.
	Kind ErrorKind
	// Detail provides additional context about the error.
	Detail string
}

// Error returns the error message.
func (e *FilterError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var msg string
	if e.Op != "" {
		msg = fmt.Sprintf("%s: ", e.Op)
	}
	if e.Detail != "" {
		msg += e.Detail
	} else {
		msg += e.Kind.String()
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" '%s'", e.Token)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *FilterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether the error matches the target. It matches only if
// the target is a *FilterError with the same Kind; errors.Is reaches the
// underlying error separately through Unwrap.
func (e *FilterError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if t, ok := target.(*FilterError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// New creates a new FilterError with the given kind.
func New(kind ErrorKind, op, detail string) *FilterError {
	return &FilterError{Op: op, Kind: kind, Detail: detail}
}

// Invalid builds an "invalid X 'token'" FilterError, matching the shape
// of spec.md's fatal parse error messages.
func Invalid(op, what, token string) *FilterError {
	return &FilterError{Op: op, Token: token, Kind: ErrSyntax, Detail: "invalid " + what}
}

// Wrap wraps an error with filter context.
func Wrap(err error, kind ErrorKind, op string) *FilterError {
	return &FilterError{Op: op, Err: err, Kind: kind}
}

// WrapWithToken wraps an error with the offending token.
func WrapWithToken(err error, kind ErrorKind, op, token string) *FilterError {
	return &FilterError{Op: op, Token: token, Err: err, Kind: kind}
}

// WrapWithDetail wraps an error with additional detail.
func WrapWithDetail(err error, kind ErrorKind, op, detail string) *FilterError {
	return &FilterError{Op: op, Err: err, Kind: kind, Detail: detail}
}

// IsKind checks if an error is of a specific kind.
func IsKind(err error, kind ErrorKind) bool {
	var ferr *FilterError
	if errors.As(err, &ferr) {
		return ferr.Kind == kind
	}
	return false
}

// GetKind returns the error kind if the error is a FilterError.
func GetKind(err error) (ErrorKind, bool) {
	var ferr *FilterError
	if errors.As(err, &ferr) {
		return ferr.Kind, true
	}
	return 0, false
}

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
