// Package apperr defines the closed set of failure kinds returned by the
// worktree lifecycle engine and their stable process exit codes.
//
// Every engine failure is an [*Error]. Context may be added with
// fmt.Errorf("...: %w", err); the kind survives wrapping and is recovered
// with [KindOf] or [ExitCode].
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Usage is a caller error; no state was changed.
	Usage Kind = iota + 1
	// GitFailure is an unclassified git failure; the message is passed through.
	GitFailure
	// NotARepository means repository root resolution failed.
	NotARepository
	// InvariantViolation means an operation tried to cross a protected
	// boundary, such as removing the main worktree.
	InvariantViolation
	// Conflict means repository state is incompatible with the request.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage"
	case GitFailure:
		return "git"
	case NotARepository:
		return "not_a_repository"
	case InvariantViolation:
		return "invariant"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case Usage:
		return 1
	case GitFailure:
		return 2
	case NotARepository:
		return 3
	case InvariantViolation:
		return 4
	case Conflict:
		return 5
	default:
		return 1
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap reclassifies err under kind, keeping err in the chain.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func NewUsage(format string, args ...any) *Error {
	return New(Usage, format, args...)
}

func NewGit(format string, args ...any) *Error {
	return New(GitFailure, format, args...)
}

func NewNotARepo(format string, args ...any) *Error {
	return New(NotARepository, format, args...)
}

func NewInvariant(format string, args ...any) *Error {
	return New(InvariantViolation, format, args...)
}

func NewConflict(format string, args ...any) *Error {
	return New(Conflict, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors that carry no kind (flag parsing, argument validation) are Usage.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Usage
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// ExitCode maps err to the process exit code. A nil error exits 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
