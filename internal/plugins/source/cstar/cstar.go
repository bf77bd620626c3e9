// Package cstar implements the CStar front end: a single forward pass that
// classifies each line, extracts the entry and function blocks by brace
// depth, and rewrites retained lines.
package cstar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/efebarandurmaz/cstar/internal/ir"
	"github.com/efebarandurmaz/cstar/internal/plugins"
)

// Options configures a Plugin.
type Options struct {
	BraceMode BraceMode
	// Rules replaces the rewrite rule list; nil means DefaultRules.
	Rules []Rule
	// ReportKeywords records a keyword diagnostic for lines that use the
	// runtime vocabulary.
	ReportKeywords bool
	Logger         *slog.Logger
}

// Plugin implements SourcePlugin for CStar.
type Plugin struct {
	opts Options
}

func New(opts Options) *Plugin {
	if opts.BraceMode == "" {
		opts.BraceMode = BraceModeLegacy
	}
	return &Plugin{opts: opts}
}

func (p *Plugin) Language() string { return "cstar" }

func (p *Plugin) FileExtensions() []string { return []string{".cstar"} }

// BraceMode returns the configured counting mode.
func (p *Plugin) BraceMode() BraceMode { return p.opts.BraceMode }

func (p *Plugin) Parse(ctx context.Context, file plugins.SourceFile) (*ir.TranslationUnit, error) {
	if file.Reader == nil {
		return nil, fmt.Errorf("parse %s: no reader", file.Path)
	}
	unit := ir.NewTranslationUnit(file.Path)
	unit.Metadata["source_language"] = p.Language()
	unit.Metadata["brace_mode"] = string(p.opts.BraceMode)

	ex := newExtractor(ctx, unit, p.opts)
	unit.Metadata["rewrite_rules"] = strings.Join(ex.rewriter.RuleNames(), ",")
	if err := scanLines(file.Reader, ex.step); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	ex.finish()

	ex.logger.DebugContext(ctx, "scan complete",
		"path", file.Path,
		"lines", unit.Stats.Lines,
		"includes", len(unit.Includes),
		"functions", len(unit.Functions),
		"uses_args", unit.UsesArgs,
	)
	return unit, nil
}
