// Package ui writes the compiler's console messages. Every method is a no-op
// in silent mode.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/efebarandurmaz/cstar/internal/ir"
	"github.com/efebarandurmaz/cstar/internal/version"
)

// ColorMode controls ANSI styling.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// ParseColorMode parses --color; empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(s)) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorOn:
		return ColorOn, nil
	case ColorOff:
		return ColorOff, nil
	}
	return "", fmt.Errorf("invalid --color %q (want auto, on or off)", s)
}

// Printer writes styled messages to an output and an error stream.
type Printer struct {
	out    io.Writer
	err    io.Writer
	silent bool
	styles *Styles
}

func NewPrinter(out, errw io.Writer, silent bool, mode ColorMode) *Printer {
	r := lipgloss.NewRenderer(out)
	if useColor(out, mode) {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: out, err: errw, silent: silent, styles: NewStyles(r)}
}

func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Silent reports whether output is suppressed.
func (p *Printer) Silent() bool { return p.silent }

// Out is the standard stream, or io.Discard when silent.
func (p *Printer) Out() io.Writer {
	if p.silent {
		return io.Discard
	}
	return p.out
}

// Err is the error stream, or io.Discard when silent.
func (p *Printer) Err() io.Writer {
	if p.silent {
		return io.Discard
	}
	return p.err
}

func (p *Printer) println(w io.Writer, s string) {
	if p.silent {
		return
	}
	fmt.Fprintln(w, s)
}

// Banner prints the compiler name and license lines.
func (p *Printer) Banner() {
	p.println(p.out, p.styles.Title.Render(version.Name))
	p.println(p.out, "Licensed under the "+p.styles.License.Render(version.License))
}

// Version prints the banner followed by the version line.
func (p *Printer) Version() {
	p.Banner()
	p.println(p.out, version.Line())
}

// Step announces a toolchain stage such as "Compiling...".
func (p *Printer) Step(msg string) {
	p.println(p.out, p.styles.Step.Render(msg))
}

// Success prints a green label with optional detail.
func (p *Printer) Success(label, detail string) {
	line := p.styles.Success.Render(label)
	if detail != "" {
		line += " " + detail
	}
	p.println(p.out, line)
}

// Warning prints "Warning: msg" to the error stream.
func (p *Printer) Warning(msg string) {
	p.println(p.err, p.styles.Warning.Render("Warning:")+" "+msg)
}

// Error prints "error: msg" to the error stream.
func (p *Printer) Error(msg string) {
	p.println(p.err, p.styles.Error.Render("error:")+" "+msg)
}

// Failure prints a fatal stage failure such as "Compilation failed.".
func (p *Printer) Failure(msg string) {
	p.println(p.err, p.styles.Error.Render(msg))
}

// Diagnostics prints unit diagnostics: warnings always, info records only
// when verbose.
func (p *Printer) Diagnostics(diags []ir.Diagnostic, verbose bool) {
	for _, d := range diags {
		switch {
		case d.Severity == ir.SeverityWarning:
			p.Warning(d.Message)
		case verbose:
			p.println(p.out, p.styles.Muted.Render(fmt.Sprintf("%s:%d", d.Code, d.Line))+" "+d.Message)
		}
	}
}

// Translated reports the written output file.
func (p *Printer) Translated(output string) {
	p.Success("Transpiled", p.styles.File.Render(output))
}
