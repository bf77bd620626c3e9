package plugins

import (
	"context"
	"io"
	"testing"

	"github.com/efebarandurmaz/cstar/internal/ir"
)

type mockSource struct{}

func (m *mockSource) Language() string { return "mock" }
func (m *mockSource) Parse(_ context.Context, f SourceFile) (*ir.TranslationUnit, error) {
	return ir.NewTranslationUnit(f.Path), nil
}
func (m *mockSource) FileExtensions() []string { return []string{"MCK", ".mock"} }

type bareSource struct{}

func (b *bareSource) Language() string { return "bare" }
func (b *bareSource) Parse(_ context.Context, f SourceFile) (*ir.TranslationUnit, error) {
	return ir.NewTranslationUnit(f.Path), nil
}

type mockTarget struct{}

func (m *mockTarget) Language() string        { return "mock" }
func (m *mockTarget) OutputExtension() string { return ".out" }
func (m *mockTarget) Generate(_ context.Context, _ *ir.TranslationUnit, _ io.Writer) error {
	return nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.RegisterSource(&mockSource{})
	r.RegisterTarget(&mockTarget{})

	if _, err := r.Source("mock"); err != nil {
		t.Errorf("expected source, got error: %v", err)
	}
	if _, err := r.Source("unknown"); err == nil {
		t.Error("expected error for unknown source")
	}
	if _, err := r.Target("mock"); err != nil {
		t.Errorf("expected target, got error: %v", err)
	}
	if _, err := r.Target("unknown"); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestSourceForPath(t *testing.T) {
	r := NewRegistry()
	r.RegisterSource(&mockSource{})
	r.RegisterSource(&bareSource{})

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"prog.mck", false},
		{"dir/prog.MOCK", false},
		{"prog.txt", true},
		{"noext", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := r.SourceForPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Language() != "mock" {
				t.Errorf("expected mock plugin, got %s", p.Language())
			}
		})
	}
}

func TestExtensions(t *testing.T) {
	r := NewRegistry()
	r.RegisterSource(&mockSource{})
	r.RegisterSource(&bareSource{})

	exts := r.Extensions()
	if len(exts) != 2 || exts[0] != ".mck" || exts[1] != ".mock" {
		t.Errorf("unexpected extensions: %v", exts)
	}
}
