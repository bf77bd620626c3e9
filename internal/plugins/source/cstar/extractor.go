package cstar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/efebarandurmaz/cstar/internal/ir"
)

// State is the block extraction state.
type State int

const (
	StateScanning State = iota
	StateAwaitingEntryBrace
	StateInEntryBlock
	StateInFunctionBlock
)

func (s State) String() string {
	switch s {
	case StateAwaitingEntryBrace:
		return "awaiting-entry-brace"
	case StateInEntryBlock:
		return "in-entry-block"
	case StateInFunctionBlock:
		return "in-function-block"
	default:
		return "scanning"
	}
}

// extractor drives one forward pass over a file. It owns every buffer of the
// run through unit.
type extractor struct {
	ctx      context.Context
	unit     *ir.TranslationUnit
	braces   braceCounter
	rewriter *Rewriter
	keywords bool
	logger   *slog.Logger

	state State
	depth int
	fn    *ir.Function
}

func newExtractor(ctx context.Context, unit *ir.TranslationUnit, opts Options) *extractor {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &extractor{
		ctx:      ctx,
		unit:     unit,
		braces:   newBraceCounter(opts.BraceMode),
		rewriter: NewRewriter(rules...),
		keywords: opts.ReportKeywords,
		logger:   logger,
	}
}

// step handles one line. Every line is brace-scanned and argument-scanned
// exactly once, whatever its category.
func (e *extractor) step(line SourceLine) {
	e.unit.Stats.Lines++
	if !e.unit.UsesArgs && mentionsArgs(line.Text) {
		e.unit.UsesArgs = true
		e.logger.DebugContext(e.ctx, "argument usage detected", "line", line.Number)
	}
	if e.keywords {
		if kw, ok := firstKeyword(line.Text); ok {
			e.unit.AddDiagnostic(ir.SeverityInfo, ir.CodeKeyword, line.Number,
				fmt.Sprintf("Keyword found: %s in line: %s", kw, line.Text))
		}
	}

	scan := e.braces.scan(line.Text)
	c := classify(line.Text, e.state, scan.firstOpen() >= 0)

	switch c.Kind {
	case KindImport:
		e.importDirective(line, c.Import)
	case KindInclude:
		e.include(line)
	case KindEntryStart:
		e.entryStart(line, scan)
	case KindEntryBody:
		if e.state == StateAwaitingEntryBrace {
			e.entryBrace(line, scan)
		} else {
			e.entryBody(line, scan)
		}
	case KindFunctionStart:
		e.functionStart(line, c.Text, scan)
	case KindFunctionBody:
		e.functionBody(line, scan)
	default:
		e.unit.Stats.PlainLines++
		e.appendBody(line, ir.BodyPlain, line.Text)
	}
}

// finish is called at end of input. An open block is left as buffered.
func (e *extractor) finish() {
	switch e.state {
	case StateInEntryBlock, StateAwaitingEntryBrace:
		e.unit.Unterminated = "entry"
	case StateInFunctionBlock:
		e.unit.Unterminated = "function"
	}
	if e.unit.Unterminated != "" {
		e.logger.DebugContext(e.ctx, "block open at end of input",
			"block", e.unit.Unterminated, "depth", e.depth)
	}
}

func (e *extractor) importDirective(line SourceLine, d ImportDirective) {
	e.unit.Stats.Imports++
	e.unit.Stats.DroppedLines++
	if !d.Valid() {
		e.unit.AddDiagnostic(ir.SeverityWarning, ir.CodeUnknownImportKind, line.Number,
			fmt.Sprintf("Unknown import type '%s'. Use 'system' or 'local'.", d.Kind))
		return
	}
	e.unit.Includes = append(e.unit.Includes, d.IncludeLine())
	e.logger.DebugContext(e.ctx, "import resolved", "line", line.Number, "header", d.Name, "kind", d.Kind)
}

func (e *extractor) include(line SourceLine) {
	e.unit.Stats.Includes++
	if isPreludeInclude(line.Text) {
		e.unit.Stats.DroppedLines++
		return
	}
	e.unit.Includes = append(e.unit.Includes, line.Text)
}

// entryStart handles the entry declaration line. Without a brace on the line
// the extractor waits for one.
func (e *extractor) entryStart(line SourceLine, scan braceScan) {
	e.unit.Stats.DroppedLines++
	if scan.firstOpen() < 0 {
		e.state = StateAwaitingEntryBrace
		return
	}
	e.openEntry(line, scan, false)
}

// entryBrace handles the line carrying the opening brace after a bare
// declaration.
func (e *extractor) entryBrace(line SourceLine, scan braceScan) {
	e.openEntry(line, scan, true)
}

// openEntry enters the entry block at the first opening brace of the line.
// Braces after it still count; content after it becomes the first body line
// unless it is only whitespace and braces.
func (e *extractor) openEntry(line SourceLine, scan braceScan, separate bool) {
	first := scan.firstOpen()
	e.depth = scan.deltaFrom(first)
	rest := line.Text[first+1:]

	if e.depth == 0 && closesAfter(scan, first) {
		// opened and closed on one line
		e.state = StateScanning
		if inner := innerBlock(line.Text, scan, first); !onlyBraces(inner) {
			e.unit.Stats.EntryLines++
			e.appendBody(line, ir.BodyEntry, inner)
		} else if separate {
			e.unit.Stats.DroppedLines++
		}
		return
	}

	e.state = StateInEntryBlock
	if onlyBraces(rest) {
		if separate {
			e.unit.Stats.DroppedLines++
		}
		return
	}
	e.unit.Stats.EntryLines++
	e.appendBody(line, ir.BodyEntry, rest)
}

func (e *extractor) entryBody(line SourceLine, scan braceScan) {
	e.depth += scan.delta()
	if e.depth == 0 && scan.closed() {
		e.state = StateScanning
		e.unit.Stats.DroppedLines++
		return
	}
	e.unit.Stats.EntryLines++
	e.appendBody(line, ir.BodyEntry, line.Text)
}

func (e *extractor) functionStart(line SourceLine, signature string, scan braceScan) {
	e.fn = &ir.Function{Line: line.Number, Signature: e.rewriter.Rewrite(signature)}
	e.unit.Functions = append(e.unit.Functions, e.fn)
	e.depth = scan.delta()
	if e.depth == 0 && scan.closed() {
		e.fn.Inline = true
		e.fn = nil
		return
	}
	e.state = StateInFunctionBlock
}

func (e *extractor) functionBody(line SourceLine, scan braceScan) {
	e.depth += scan.delta()
	if e.depth == 0 && scan.closed() {
		e.state = StateScanning
		e.fn = nil
		e.unit.Stats.DroppedLines++
		return
	}
	e.unit.Stats.FunctionLines++
	e.fn.Body = append(e.fn.Body, e.rewriter.Rewrite(line.Text))
}

func (e *extractor) appendBody(line SourceLine, kind ir.BodyKind, text string) {
	e.unit.Body = append(e.unit.Body, ir.BodyLine{
		Line: line.Number,
		Kind: kind,
		Text: e.rewriter.Rewrite(text),
	})
}

// closesAfter reports a closing brace at or after offset.
func closesAfter(scan braceScan, offset int) bool {
	for _, ev := range scan.events {
		if ev.offset >= offset && !ev.open {
			return true
		}
	}
	return false
}

// innerBlock returns the text between the opening brace at first and the
// brace that brings the depth back to zero.
func innerBlock(text string, scan braceScan, first int) string {
	d := 0
	for _, ev := range scan.events {
		if ev.offset < first {
			continue
		}
		if ev.open {
			d++
			continue
		}
		d--
		if d == 0 {
			return text[first+1 : ev.offset]
		}
	}
	return text[first+1:]
}

// onlyBraces reports text made of nothing but whitespace and braces.
func onlyBraces(text string) bool {
	return strings.Trim(text, " \t{}") == ""
}
