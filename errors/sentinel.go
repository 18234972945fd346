// Package errors provides predefined sentinel errors for common failure
// cases in filter expression parsing.
package errors

// Action keyword errors.
var (
	// ErrUnknownAction indicates an unrecognised top-level action keyword.
	ErrUnknownAction = &FilterError{
		Kind:   ErrSyntax,
		Detail: "invalid filter action",
	}

	// ErrUnknownFilterName indicates an unrecognised filter primitive name.
	ErrUnknownFilterName = &FilterError{
		Kind:   ErrSyntax,
		Detail: "unknown filter primitive",
	}
)

// SyscallSet / GenericSet parsing errors.
var (
	// ErrEmptyFilterSpec indicates a comma-separated list produced no
	// matching tokens at all.
	ErrEmptyFilterSpec = &FilterError{
		Kind:   ErrSyntax,
		Detail: "invalid system call",
	}

	// ErrInvalidToken indicates a single token in a list matched none
	// of the numeric/regex/class/name branches.
	ErrInvalidToken = &FilterError{
		Kind:   ErrSyntax,
		Detail: "invalid system call",
	}

	// ErrInvalidDescriptor indicates a malformed fd token.
	ErrInvalidDescriptor = &FilterError{
		Kind:   ErrSyntax,
		Detail: "invalid descriptor",
	}

	// ErrInvalidSignal indicates a malformed or unresolvable signal name.
	ErrInvalidSignal = &FilterError{
		Kind:   ErrSyntax,
		Detail: "invalid signal",
	}
)

// Regex errors.
var (
	// ErrRegexCompile indicates a malformed regular expression.
	ErrRegexCompile = &FilterError{
		Kind:   ErrRegex,
		Detail: "failed to compile regex",
	}
)

// Injection option errors.
var (
	// ErrInvalidInjectArg indicates a malformed when=/error=/retval=/
	// signal= token, or an inject= specification lacking all three.
	ErrInvalidInjectArg = &FilterError{
		Kind:   ErrSemantic,
		Detail: "invalid inject argument",
	}

	// ErrInvalidErrno indicates an unresolvable errno= name or an
	// out-of-range numeric errno.
	ErrInvalidErrno = &FilterError{
		Kind:   ErrSyntax,
		Detail: "invalid errno",
	}

	// ErrFaultTokenForbidden indicates retval= or signal= appeared in
	// fault= syntax, where only error= is allowed.
	ErrFaultTokenForbidden = &FilterError{
		Kind:   ErrSemantic,
		Detail: "token not allowed in fault syntax",
	}
)
