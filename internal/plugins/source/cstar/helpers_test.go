package cstar

import (
	"context"
	"strings"
	"testing"

	"github.com/efebarandurmaz/cstar/internal/ir"
	"github.com/efebarandurmaz/cstar/internal/plugins"
)

func parse(t *testing.T, src string, opts Options) *ir.TranslationUnit {
	t.Helper()
	unit, err := New(opts).Parse(context.Background(), plugins.SourceFile{
		Path:   "test.cstar",
		Reader: strings.NewReader(src),
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return unit
}

func assertLines(t *testing.T, what string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d lines %q, want %d lines %q", what, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %q, want %q", what, i, got[i], want[i])
		}
	}
}
