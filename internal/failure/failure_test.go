package failure

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(InputNotFound, "a.cstar", nil), "File not found: a.cstar"},
		{New(OutputUnwritable, "a.cpp", fs.ErrPermission), "Cannot create output file: a.cpp (permission denied)"},
		{New(CompilerInvocationFailed, "a.cpp", nil), "Compilation failed."},
		{New(LinkerInvocationFailed, "a.cpp", nil), "Linker failed."},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("compile step: %w", New(CompilerInvocationFailed, "x.cpp", errors.New("exit status 1")))
	kind, ok := KindOf(err)
	if !ok || kind != CompilerInvocationFailed {
		t.Errorf("KindOf = %v, %v", kind, ok)
	}
	if !Is(err, CompilerInvocationFailed) || Is(err, LinkerInvocationFailed) {
		t.Error("Is did not match the wrapped kind")
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("plain error should carry no kind")
	}
}

func TestUnwrap(t *testing.T) {
	err := New(InputNotFound, "a.cstar", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("nil should exit 0")
	}
	for _, k := range []Kind{InputNotFound, OutputUnwritable, CompilerInvocationFailed, LinkerInvocationFailed} {
		if got := ExitCode(New(k, "", nil)); got != 1 {
			t.Errorf("ExitCode(%s) = %d, want 1", k, got)
		}
	}
	if ExitCode(errors.New("other")) != 1 {
		t.Error("unclassified error should exit 1")
	}
}
