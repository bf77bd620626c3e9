// Package failure defines the fatal outcomes of a run and their exit codes.
package failure

import (
	"errors"
	"fmt"
)

// Kind identifies a fatal condition.
type Kind int

const (
	InputNotFound Kind = iota + 1
	OutputUnwritable
	CompilerInvocationFailed
	LinkerInvocationFailed
)

func (k Kind) String() string {
	switch k {
	case InputNotFound:
		return "input-not-found"
	case OutputUnwritable:
		return "output-unwritable"
	case CompilerInvocationFailed:
		return "compiler-invocation-failed"
	case LinkerInvocationFailed:
		return "linker-invocation-failed"
	}
	return "unknown"
}

// Error is a fatal condition tied to a file path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case InputNotFound:
		msg = "File not found: " + e.Path
	case OutputUnwritable:
		msg = "Cannot create output file: " + e.Path
	case CompilerInvocationFailed:
		msg = "Compilation failed."
	case LinkerInvocationFailed:
		msg = "Linker failed."
	default:
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err as a fatal failure of the given kind.
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the Kind of the first failure in err's chain.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// Is reports whether err carries a failure of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// ExitCode maps an outcome to a process exit status: 0 for success, 1 for any
// failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
