// Package cpp assembles a TranslationUnit into a single C++ translation unit
// that includes the stdcstar runtime prelude.
package cpp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/efebarandurmaz/cstar/internal/ir"
)

const (
	HeaderComment  = "// Transpiled from CStar"
	PreludeInclude = `#include "ext/stdcstar.h"`

	// BodyIndent prefixes every line of the synthesized entry function.
	BodyIndent = "    "
)

// Entry function and native wrapper signatures, chosen by argument usage.
const (
	entryWithArgs   = "usingfunc::integerfunc mainfunc(int argc, char* argv[]) {"
	entryNoArgs     = "usingfunc::integerfunc mainfunc() {"
	nativeWithArgs  = "int main(int argc, char* argv[]) {"
	nativeNoArgs    = "int main() {"
	forwardWithArgs = "return mainfunc(argc, argv);"
	forwardNoArgs   = "return mainfunc();"
)

// Plugin implements TargetPlugin for C++.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Language() string { return "cpp" }

func (p *Plugin) OutputExtension() string { return ".cpp" }

// Generate writes the document sections in fixed order: header and prelude,
// includes, functions, entry function, native entry point.
func (p *Plugin) Generate(ctx context.Context, unit *ir.TranslationUnit, w io.Writer) error {
	if unit == nil {
		return fmt.Errorf("generate: nil translation unit")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, Assemble(unit)); err != nil {
		return fmt.Errorf("generate %s: %w", unit.Path, err)
	}
	return nil
}

// Assemble renders unit as C++ source text.
func Assemble(unit *ir.TranslationUnit) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(HeaderComment)
	line(PreludeInclude)
	line("")

	for _, inc := range unit.Includes {
		line(inc)
	}
	line("")

	for _, fn := range unit.Functions {
		line(fn.Signature)
		if fn.Inline {
			continue
		}
		for _, l := range fn.Body {
			line(l)
		}
		line("}")
	}
	line("")

	entry, native, forward := entryNoArgs, nativeNoArgs, forwardNoArgs
	if unit.UsesArgs {
		entry, native, forward = entryWithArgs, nativeWithArgs, forwardWithArgs
	}
	line(entry)
	for _, text := range unit.BodyText() {
		line(BodyIndent + text)
	}
	line("}")
	line("")

	line(native)
	line(BodyIndent + forward)
	line("}")
	return b.String()
}
