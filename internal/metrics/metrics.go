package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/efebarandurmaz/cstar/internal/ir"
)

// Report collects statistics for one translation run.
type Report struct {
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at,omitempty"`
	Duration    time.Duration      `json:"duration_ms,omitempty"`
	Input       FileMetrics        `json:"input"`
	Output      FileMetrics        `json:"output"`
	Translation TranslationMetrics `json:"translation"`
	Tools       []ToolMetrics      `json:"tools,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
	Errors      []string           `json:"errors,omitempty"`
}

type FileMetrics struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	SHA256   string `json:"sha256,omitempty"`
	Bytes    int64  `json:"bytes"`
}

type TranslationMetrics struct {
	BraceMode     string `json:"brace_mode"`
	Lines         int    `json:"lines"`
	PlainLines    int    `json:"plain_lines"`
	EntryLines    int    `json:"entry_lines"`
	FunctionLines int    `json:"function_lines"`
	DroppedLines  int    `json:"dropped_lines"`
	Imports       int    `json:"imports"`
	Includes      int    `json:"includes"`
	Functions     int    `json:"functions"`
	UsesArgs      bool   `json:"uses_args"`
	Unterminated  string `json:"unterminated,omitempty"`
}

type ToolMetrics struct {
	Kind     string        `json:"kind"`
	Command  string        `json:"command"`
	Duration time.Duration `json:"duration_ms"`
	ExitCode int           `json:"exit_code"`
}

// New starts tracking a run.
func New() *Report {
	return &Report{StartedAt: time.Now()}
}

// CollectUnit copies the translation counters from a scanned unit.
func (r *Report) CollectUnit(unit *ir.TranslationUnit) {
	s := unit.Stats
	r.Translation = TranslationMetrics{
		BraceMode:     unit.Metadata["brace_mode"],
		Lines:         s.Lines,
		PlainLines:    s.PlainLines,
		EntryLines:    s.EntryLines,
		FunctionLines: unit.FunctionLineCount(),
		DroppedLines:  s.DroppedLines,
		Imports:       s.Imports,
		Includes:      len(unit.Includes),
		Functions:     len(unit.Functions),
		UsesArgs:      unit.UsesArgs,
		Unterminated:  unit.Unterminated,
	}
	for _, d := range unit.Warnings() {
		r.Warnings = append(r.Warnings, fmt.Sprintf("line %d: %s", d.Line, d.Message))
	}
}

// AddTool records one toolchain process.
func (r *Report) AddTool(kind, command string, d time.Duration, exitCode int) {
	r.Tools = append(r.Tools, ToolMetrics{
		Kind:     kind,
		Command:  command,
		Duration: d,
		ExitCode: exitCode,
	})
}

// Finish marks the run as complete.
func (r *Report) Finish(err error) {
	r.FinishedAt = time.Now()
	r.Duration = r.FinishedAt.Sub(r.StartedAt)
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
	}
}

// PrintSummary writes a human-readable summary.
func (r *Report) PrintSummary(w io.Writer) {
	t := r.Translation
	fmt.Fprintf(w, "\n╔══════════════════════════════════════╗\n")
	fmt.Fprintf(w, "║      CSTAR TRANSLATION REPORT        ║\n")
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ Duration:    %-23s║\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "║ Brace Mode:  %-23s║\n", t.BraceMode)
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ INPUT (%s)\n", r.Input.Language)
	fmt.Fprintf(w, "║   Path:        %s\n", r.Input.Path)
	fmt.Fprintf(w, "║   Size:        %s\n", formatBytes(r.Input.Bytes))
	fmt.Fprintf(w, "║   SHA-256:     %s\n", shortHash(r.Input.SHA256))
	fmt.Fprintf(w, "║   Lines:       %d\n", t.Lines)
	fmt.Fprintf(w, "║   Plain:       %d\n", t.PlainLines)
	fmt.Fprintf(w, "║   Entry:       %d\n", t.EntryLines)
	fmt.Fprintf(w, "║   Function:    %d\n", t.FunctionLines)
	fmt.Fprintf(w, "║   Dropped:     %d\n", t.DroppedLines)
	fmt.Fprintf(w, "║   Imports:     %d\n", t.Imports)
	fmt.Fprintf(w, "║   Uses Args:   %t\n", t.UsesArgs)
	if t.Unterminated != "" {
		fmt.Fprintf(w, "║   Unterminated: %s block\n", t.Unterminated)
	}
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ OUTPUT (%s)\n", r.Output.Language)
	fmt.Fprintf(w, "║   Path:        %s\n", r.Output.Path)
	fmt.Fprintf(w, "║   Size:        %s\n", formatBytes(r.Output.Bytes))
	fmt.Fprintf(w, "║   SHA-256:     %s\n", shortHash(r.Output.SHA256))
	fmt.Fprintf(w, "║   Includes:    %d\n", t.Includes)
	fmt.Fprintf(w, "║   Functions:   %d\n", t.Functions)
	if len(r.Tools) > 0 {
		fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
		fmt.Fprintf(w, "║ TOOLCHAIN\n")
		for _, tool := range r.Tools {
			status := "OK"
			if tool.ExitCode != 0 {
				status = fmt.Sprintf("exit %d", tool.ExitCode)
			}
			fmt.Fprintf(w, "║   %-8s %8s  %s [%s]\n", tool.Kind, tool.Duration.Round(time.Millisecond), tool.Command, status)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
		fmt.Fprintf(w, "║ WARNINGS\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "║   • %s\n", warn)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
		fmt.Fprintf(w, "║ ERRORS\n")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "║   • %s\n", e)
		}
	}
	fmt.Fprintf(w, "╚══════════════════════════════════════╝\n")
}

// JSON returns the report as formatted JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16]
	}
	return h
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
