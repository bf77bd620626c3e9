package cstar

import (
	"context"
	"strings"
	"testing"

	"github.com/efebarandurmaz/cstar/internal/plugins"
)

func TestPluginIdentity(t *testing.T) {
	p := New(Options{})
	if p.Language() != "cstar" {
		t.Errorf("expected cstar, got %s", p.Language())
	}
	if exts := p.FileExtensions(); len(exts) != 1 || exts[0] != ".cstar" {
		t.Errorf("unexpected extensions %v", exts)
	}
	if p.BraceMode() != BraceModeLegacy {
		t.Errorf("expected legacy default, got %s", p.BraceMode())
	}

	var _ plugins.SourcePlugin = p
	var _ plugins.FileExtensionsProvider = p
}

func TestParseNilReader(t *testing.T) {
	_, err := New(Options{}).Parse(context.Background(), plugins.SourceFile{Path: "x.cstar"})
	if err == nil {
		t.Fatal("expected error for missing reader")
	}
}

func TestParseMetadata(t *testing.T) {
	unit := parse(t, "", Options{})
	if unit.Path != "test.cstar" {
		t.Errorf("unexpected path %q", unit.Path)
	}
	if unit.Metadata["source_language"] != "cstar" {
		t.Errorf("unexpected source_language %q", unit.Metadata["source_language"])
	}
	if unit.Metadata["rewrite_rules"] != "scoped-println,string-args-array" {
		t.Errorf("unexpected rewrite_rules %q", unit.Metadata["rewrite_rules"])
	}
	if unit.Stats.Lines != 0 || len(unit.Body) != 0 {
		t.Errorf("expected empty unit, got %+v", unit)
	}
}

func TestParseCustomRules(t *testing.T) {
	upper := Rule{Name: "upper", Apply: strings.ToUpper}
	unit := parse(t, "using int main() {\n    return 0;\n}\n", Options{Rules: []Rule{upper}})
	assertLines(t, "entry body", unit.EntryBody(), []string{"    RETURN 0;"})
	if unit.Metadata["rewrite_rules"] != "upper" {
		t.Errorf("unexpected rewrite_rules %q", unit.Metadata["rewrite_rules"])
	}
}

func TestParseFinalLineWithoutNewline(t *testing.T) {
	unit := parse(t, "using int main() {\r\n    return 0;\r\n}", Options{})
	assertLines(t, "entry body", unit.EntryBody(), []string{"    return 0;"})
	if unit.Unterminated != "" {
		t.Errorf("expected closed block, got %q", unit.Unterminated)
	}
}

func TestScanLines(t *testing.T) {
	var got []SourceLine
	err := scanLines(strings.NewReader("a\n\nb\n"), func(l SourceLine) { got = append(got, l) })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Number != 1 || got[1].Text != "" || got[2].Number != 3 || got[2].Text != "b" {
		t.Errorf("unexpected lines %+v", got)
	}
}

func TestScanLinesLongLine(t *testing.T) {
	long := strings.Repeat("a", 3<<20)
	var got []SourceLine
	err := scanLines(strings.NewReader("first\r\n"+long+"\nlast"), func(l SourceLine) { got = append(got, l) })
	if err != nil {
		t.Fatalf("long line should be accepted: %v", err)
	}
	if len(got) != 3 || got[0].Text != "first" || got[1].Text != long || got[2].Number != 3 || got[2].Text != "last" {
		t.Errorf("unexpected lines: count %d", len(got))
	}
}

func TestParseLongEntryLine(t *testing.T) {
	stmt := "    puts(\"" + strings.Repeat("z", 2<<20) + "\");"
	unit := parse(t, "using int main() {\n"+stmt+"\n}\n", Options{})
	assertLines(t, "entry body", unit.EntryBody(), []string{stmt})
}
