// Package pipeline runs one translation: open the input, create the output,
// scan, assemble and close.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/efebarandurmaz/cstar/internal/failure"
	"github.com/efebarandurmaz/cstar/internal/ir"
	"github.com/efebarandurmaz/cstar/internal/metrics"
	"github.com/efebarandurmaz/cstar/internal/observability"
	"github.com/efebarandurmaz/cstar/internal/plugins"
	"github.com/efebarandurmaz/cstar/internal/plugins/source/cstar"
	"github.com/efebarandurmaz/cstar/internal/plugins/target/cpp"
)

// DefaultTarget is the target language used when Options.Target is empty.
const DefaultTarget = "cpp"

// Options configures Translate.
type Options struct {
	Registry *plugins.Registry
	Target   string
	// OutputPath overrides the path derived from the input.
	OutputPath string
	Logger     *slog.Logger
	// Report, when set, receives input/output fingerprints and unit counters.
	Report *metrics.Report
}

// Result is a completed translation.
type Result struct {
	Unit       *ir.TranslationUnit
	OutputPath string
}

// NewRegistry returns a registry holding the CStar source and C++ target.
func NewRegistry(src cstar.Options) *plugins.Registry {
	reg := plugins.NewRegistry()
	reg.RegisterSource(cstar.New(src))
	reg.RegisterTarget(cpp.New())
	return reg
}

// OutputPath replaces the extension of the input's base name with ext,
// keeping the directory.
func OutputPath(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// Translate converts the file at input. The output file is created before
// scanning starts and removed again if scanning fails; a later fatal error
// leaves whatever was already written.
func Translate(ctx context.Context, input string, opts Options) (res *Result, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry(cstar.Options{Logger: logger})
	}
	targetLang := opts.Target
	if targetLang == "" {
		targetLang = DefaultTarget
	}

	ctx, span := observability.StartTranslateSpan(ctx, input, braceModeOf(reg, input))
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()

	in, err := os.Open(input)
	if err != nil {
		return nil, failure.New(failure.InputNotFound, input, err)
	}
	defer in.Close()

	source, err := reg.SourceForPath(input)
	if err != nil {
		return nil, fmt.Errorf("selecting source plugin (accepted: %s): %w",
			strings.Join(reg.Extensions(), ", "), err)
	}
	target, err := reg.Target(targetLang)
	if err != nil {
		return nil, fmt.Errorf("selecting target plugin: %w", err)
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = OutputPath(input, target.OutputExtension())
	}
	out, err := os.Create(outPath)
	if err != nil {
		return nil, failure.New(failure.OutputUnwritable, outPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = failure.New(failure.OutputUnwritable, outPath, cerr)
		}
	}()
	logger.DebugContext(ctx, "translation started", "input", input, "output", outPath,
		"source", source.Language(), "target", target.Language())

	inDigest := metrics.NewDigest()
	unit, err := source.Parse(ctx, plugins.SourceFile{
		Path:   input,
		Reader: io.TeeReader(in, inDigest),
	})
	if err != nil {
		// nothing has been written yet
		_ = os.Remove(outPath)
		return nil, fmt.Errorf("scanning %s: %w", input, err)
	}
	for _, d := range unit.Warnings() {
		logger.DebugContext(ctx, "scan warning", "line", d.Line, "code", d.Code, "message", d.Message)
	}

	outDigest := metrics.NewDigest()
	bw := bufio.NewWriter(io.MultiWriter(out, outDigest))
	if err := target.Generate(ctx, unit, bw); err != nil {
		return nil, failure.New(failure.OutputUnwritable, outPath, err)
	}
	if err := bw.Flush(); err != nil {
		return nil, failure.New(failure.OutputUnwritable, outPath, err)
	}

	observability.RecordTranslateResult(span, observability.TranslateResult{
		Lines:        unit.Stats.Lines,
		Includes:     len(unit.Includes),
		Functions:    len(unit.Functions),
		UsesArgs:     unit.UsesArgs,
		Warnings:     len(unit.Warnings()),
		Unterminated: unit.Unterminated,
	})
	if r := opts.Report; r != nil {
		r.Input = metrics.FileMetrics{Path: input, Language: source.Language(), SHA256: inDigest.Sum(), Bytes: inDigest.Bytes()}
		r.Output = metrics.FileMetrics{Path: outPath, Language: target.Language(), SHA256: outDigest.Sum(), Bytes: outDigest.Bytes()}
		r.CollectUnit(unit)
	}
	logger.DebugContext(ctx, "translation finished", "output", outPath, "bytes", outDigest.Bytes())

	return &Result{Unit: unit, OutputPath: outPath}, nil
}

// braceModeOf reports the brace mode of the CStar plugin handling path, for
// span attributes.
func braceModeOf(reg *plugins.Registry, path string) string {
	p, err := reg.SourceForPath(path)
	if err != nil {
		return ""
	}
	if cp, ok := p.(*cstar.Plugin); ok {
		return string(cp.BraceMode())
	}
	return ""
}
