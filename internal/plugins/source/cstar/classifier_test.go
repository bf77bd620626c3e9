package cstar

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		state State
		open  bool
		want  Kind
	}{
		{"import system", `import("stdio.h", "system")`, StateScanning, false, KindImport},
		{"import inside entry", `    import("x.h","local")`, StateInEntryBlock, false, KindImport},
		{"include", "#include <cmath>", StateScanning, false, KindInclude},
		{"include inside function", "#include <vector>", StateInFunctionBlock, false, KindInclude},
		{"mainfunc", "usingfunc::integerfunc mainfunc() {", StateScanning, true, KindEntryStart},
		{"using int main", "using int main(int argc, char* argv[])", StateScanning, false, KindEntryStart},
		{"redeclared while awaiting", "using int main()", StateAwaitingEntryBrace, false, KindEntryStart},
		{"brace while awaiting", "{", StateAwaitingEntryBrace, true, KindEntryBody},
		{"no brace while awaiting", "int x;", StateAwaitingEntryBrace, false, KindPlain},
		{"returnf", "returnf int add(int a, int b) {", StateScanning, true, KindFunctionStart},
		{"indented returnf", "   returnf void f()", StateScanning, false, KindFunctionStart},
		{"returnf inside entry", "returnf int g();", StateInEntryBlock, false, KindEntryBody},
		{"main inside function", "using int main() {", StateInFunctionBlock, true, KindFunctionBody},
		{"returnf needs whitespace", "returnfoo();", StateScanning, false, KindPlain},
		{"plain", "int global = 3;", StateScanning, false, KindPlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.text, tt.state, tt.open)
			if got.Kind != tt.want {
				t.Errorf("classify(%q, %s) = %s, want %s", tt.text, tt.state, got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyStripsFunctionMarker(t *testing.T) {
	c := classify("  returnf   int add(int a, int b) {", StateScanning, true)
	if c.Text != "int add(int a, int b) {" {
		t.Errorf("expected marker stripped, got %q", c.Text)
	}
}

func TestClassifyImportDirective(t *testing.T) {
	c := classify(`import ( "mylib.h" , "local" )`, StateScanning, false)
	if c.Kind != KindImport {
		t.Fatalf("expected import, got %s", c.Kind)
	}
	if c.Import.Name != "mylib.h" || c.Import.Kind != "local" {
		t.Errorf("unexpected directive: %+v", c.Import)
	}
}

func TestImportDirectiveIncludeLine(t *testing.T) {
	tests := []struct {
		d    ImportDirective
		want string
	}{
		{ImportDirective{Name: "stdio.h", Kind: "system"}, "#include <stdio.h>"},
		{ImportDirective{Name: "util.h", Kind: "local"}, `#include "util.h"`},
		{ImportDirective{Name: "foo.h", Kind: "remote"}, ""},
		{ImportDirective{Name: "foo.h", Kind: "System"}, ""},
	}
	for _, tt := range tests {
		if got := tt.d.IncludeLine(); got != tt.want {
			t.Errorf("IncludeLine(%+v) = %q, want %q", tt.d, got, tt.want)
		}
		if tt.d.Valid() != (tt.want != "") {
			t.Errorf("Valid(%+v) = %v", tt.d, tt.d.Valid())
		}
	}
}

func TestMentionsArgs(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"return argc;", true},
		{"puts(argv[0]);", true},
		{"string args[2] = {", true},
		{"int margs = 0;", true},
		{"int arg = 0;", false},
		{"return 0;", false},
	}
	for _, tt := range tests {
		if got := mentionsArgs(tt.text); got != tt.want {
			t.Errorf("mentionsArgs(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestFirstKeyword(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"usingfunc::integerfunc mainfunc() {", "usingfunc", true},
		{`    System.out.println("hi");`, "System.out.println", true},
		{"    LLI big = 0;", "LLI", true},
		{"    ULLI big = 0;", "ULLI", true},
		{"    string name;", "", false},
		{"    return 0;", "", false},
	}
	for _, tt := range tests {
		got, ok := firstKeyword(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("firstKeyword(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}
