package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/efebarandurmaz/cstar/internal/config"
	"github.com/efebarandurmaz/cstar/internal/failure"
	"github.com/efebarandurmaz/cstar/internal/metrics"
	"github.com/efebarandurmaz/cstar/internal/observability"
	"github.com/efebarandurmaz/cstar/internal/pipeline"
	"github.com/efebarandurmaz/cstar/internal/plugins/source/cstar"
	"github.com/efebarandurmaz/cstar/internal/toolchain"
	"github.com/efebarandurmaz/cstar/internal/ui"
	"github.com/efebarandurmaz/cstar/internal/version"
)

func run(ctx context.Context, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	color, err := ui.ParseColorMode(opts.color)
	if err != nil {
		return err
	}
	printer := ui.NewPrinter(stdout, stderr, opts.silent, color)

	if opts.version {
		printer.Version()
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		printer.Warning(fmt.Sprintf("config load failed (%v), using defaults", err))
		cfg = config.Default()
	}
	applyFlags(cfg, opts)
	for _, w := range cfg.Validate() {
		printer.Warning(w)
	}

	logger := observability.Discard()
	if !opts.silent {
		logger = observability.NewLogger(cfg.Log.Level, cfg.Log.Format, stderr)
	}

	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		logger.WarnContext(ctx, "tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	printer.Banner()

	srcOpts, err := sourceOptions(cfg, logger)
	if err != nil {
		return err
	}

	report := metrics.New()
	err = build(ctx, opts, cfg, srcOpts, report, printer, logger, stdin, stdout, stderr)
	report.Finish(err)
	printReport(report, opts, printer)
	return err
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cfg *config.Config, opts *options) {
	if opts.braceMode != "" {
		cfg.Transpile.BraceMode = opts.braceMode
	}
	if opts.outExt != "" {
		cfg.Compiler.OutputExt = opts.outExt
	}
	if opts.noRun {
		cfg.Compiler.Run = false
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
}

// sourceOptions builds the front-end options: built-in rewrite rules followed
// by the configured ones.
func sourceOptions(cfg *config.Config, logger *slog.Logger) (cstar.Options, error) {
	mode, err := cstar.ParseBraceMode(cfg.Transpile.BraceMode)
	if err != nil {
		return cstar.Options{}, err
	}
	rules := cstar.DefaultRules()
	for _, r := range cfg.Rewrite.Rules {
		rule, err := cstar.CompileRule(r.Name, r.Pattern, r.Replace)
		if err != nil {
			return cstar.Options{}, err
		}
		rules = append(rules, rule)
	}
	return cstar.Options{
		BraceMode:      mode,
		Rules:          rules,
		ReportKeywords: cfg.Transpile.ReportKeywords,
		Logger:         logger,
	}, nil
}

// build translates the input and runs the requested toolchain stages. Each
// stage aborts the rest on failure.
func build(ctx context.Context, opts *options, cfg *config.Config, srcOpts cstar.Options,
	report *metrics.Report, printer *ui.Printer, logger *slog.Logger,
	stdin io.Reader, stdout, stderr io.Writer) error {

	res, err := pipeline.Translate(ctx, opts.input, pipeline.Options{
		Registry: pipeline.NewRegistry(srcOpts),
		Logger:   logger,
		Report:   report,
	})
	if err != nil {
		if _, ok := failure.KindOf(err); ok {
			printer.Error(err.Error())
		}
		return err
	}
	printer.Diagnostics(res.Unit.Diagnostics, opts.verbose)
	printer.Translated(res.OutputPath)

	tc := toolchain.New(cfg.Compiler, cfg.Linker, toolchain.NewRunner(&toolchain.RunnerConfig{
		Timeout: cfg.Toolchain.Timeout,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
	}))
	record := func(kind string, r *toolchain.Result) {
		if r != nil {
			report.AddTool(kind, r.Command.String(), r.Duration, r.ExitCode)
		}
	}

	if opts.compile {
		printer.Step("Compiling...")
		cr, err := tc.Compile(ctx, res.OutputPath)
		record(observability.SpanKindCompile, cr)
		if err != nil {
			printer.Failure("Compilation failed.")
			return err
		}
		printer.Success("Compilation successful!", "Output: "+cr.Executable)

		if !printer.Silent() && cfg.Compiler.Run {
			rr, err := tc.Run(ctx, cr.Executable)
			record(observability.SpanKindRun, rr)
			if err != nil {
				logger.DebugContext(ctx, "program exited with error", "error", err)
			}
		}
	}

	if opts.link {
		printer.Step("Invoking linker...")
		lr, err := tc.Link(ctx, res.OutputPath)
		record(observability.SpanKindLink, lr)
		if err != nil {
			printer.Failure("Linker failed.")
			return err
		}
		printer.Success("Linking successful!", "")
	}

	if opts.linkerVersion && !printer.Silent() {
		vr, err := tc.LinkerVersion(ctx)
		record(observability.SpanKindLink, vr)
		if err != nil {
			logger.WarnContext(ctx, "linker version query failed", "error", err)
		}
	}
	return nil
}

func printReport(report *metrics.Report, opts *options, printer *ui.Printer) {
	switch {
	case opts.jsonReport:
		data, err := report.JSON()
		if err != nil {
			printer.Error(err.Error())
			return
		}
		fmt.Fprintln(printer.Out(), string(data))
	case opts.stats:
		report.PrintSummary(printer.Out())
	}
}
