package cstar

import (
	"regexp"
	"strings"
)

// Kind is the category assigned to an input line.
type Kind int

const (
	KindPlain Kind = iota
	KindInclude
	KindImport
	KindEntryStart
	KindEntryBody
	KindFunctionStart
	KindFunctionBody
)

func (k Kind) String() string {
	switch k {
	case KindInclude:
		return "include"
	case KindImport:
		return "import"
	case KindEntryStart:
		return "entry-start"
	case KindEntryBody:
		return "entry-body"
	case KindFunctionStart:
		return "function-start"
	case KindFunctionBody:
		return "function-body"
	default:
		return "plain"
	}
}

// Import kinds accepted by import("<name>", "<kind>").
const (
	ImportSystem = "system"
	ImportLocal  = "local"
)

// PreludeHeader is always emitted by the assembler, so literal includes of it
// are suppressed.
const PreludeHeader = "ext/stdcstar.h"

// ImportDirective is the parsed form of an import("<name>", "<kind>") call.
type ImportDirective struct {
	Name string
	Kind string
}

// Valid reports whether the kind is system or local.
func (d ImportDirective) Valid() bool {
	return d.Kind == ImportSystem || d.Kind == ImportLocal
}

// IncludeLine renders the directive as a native include, or "" when the kind
// is not recognised.
func (d ImportDirective) IncludeLine() string {
	switch d.Kind {
	case ImportSystem:
		return "#include <" + d.Name + ">"
	case ImportLocal:
		return `#include "` + d.Name + `"`
	}
	return ""
}

// Classification is the single category decided for a line.
type Classification struct {
	Kind   Kind
	Import ImportDirective
	// Text is the line content as retained; for FunctionStart it has the
	// marker stripped.
	Text string
}

var (
	importPattern    = regexp.MustCompile(`import\s*\(\s*"([^"]+)"\s*,\s*"([^"]+)"\s*\)`)
	mainfuncPattern  = regexp.MustCompile(`usingfunc::integerfunc\s+mainfunc\s*\(`)
	usingMainPattern = regexp.MustCompile(`using\s+int\s+main\s*\(`)
	returnfPattern   = regexp.MustCompile(`^\s*returnf\s+`)
)

const includeMarker = "#include"

// isEntryDeclaration matches either spelling of the entry block header.
func isEntryDeclaration(text string) bool {
	return mainfuncPattern.MatchString(text) || usingMainPattern.MatchString(text)
}

// isPreludeInclude reports an include line naming the runtime prelude.
func isPreludeInclude(text string) bool {
	return strings.Contains(text, PreludeHeader)
}

// classify decides the category of a line from its text and the current
// state. Imports and includes are recognised in every state; block headers
// only outside blocks. For AwaitingEntryBrace, open reports whether the line
// carries the opening brace.
func classify(text string, state State, open bool) Classification {
	if m := importPattern.FindStringSubmatch(text); m != nil {
		return Classification{Kind: KindImport, Import: ImportDirective{Name: m[1], Kind: m[2]}, Text: text}
	}
	if strings.Contains(text, includeMarker) {
		return Classification{Kind: KindInclude, Text: text}
	}

	switch state {
	case StateInEntryBlock:
		return Classification{Kind: KindEntryBody, Text: text}
	case StateInFunctionBlock:
		return Classification{Kind: KindFunctionBody, Text: text}
	case StateAwaitingEntryBrace:
		if isEntryDeclaration(text) {
			return Classification{Kind: KindEntryStart, Text: text}
		}
		if open {
			return Classification{Kind: KindEntryBody, Text: text}
		}
		return Classification{Kind: KindPlain, Text: text}
	}

	if isEntryDeclaration(text) {
		return Classification{Kind: KindEntryStart, Text: text}
	}
	if returnfPattern.MatchString(text) {
		return Classification{Kind: KindFunctionStart, Text: returnfPattern.ReplaceAllString(text, "")}
	}
	return Classification{Kind: KindPlain, Text: text}
}
