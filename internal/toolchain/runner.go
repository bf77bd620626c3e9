// Package toolchain invokes the external C++ compiler, the stdcstar linker
// script and the built executable.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/efebarandurmaz/cstar/internal/observability"
)

// waitDelay bounds how long output pipes are drained after a process is killed.
const waitDelay = 2 * time.Second

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line with arguments containing spaces quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, p := range append([]string{c.Name}, c.Args...) {
		if p == "" || strings.ContainsAny(p, " \t\"") {
			p = fmt.Sprintf("%q", p)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// Result describes a finished process.
type Result struct {
	Command  Command       `json:"command"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ms"`
	// Executable is set by Compile to the path of the built program.
	Executable string `json:"executable,omitempty"`
}

// RunnerConfig bounds and wires every process started by a Runner.
type RunnerConfig struct {
	Timeout time.Duration
	Env     map[string]string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
}

func DefaultRunnerConfig() *RunnerConfig {
	return &RunnerConfig{
		Timeout: 5 * time.Minute,
		Env:     make(map[string]string),
	}
}

// Runner starts processes with a per-process timeout.
type Runner struct {
	cfg    *RunnerConfig
	logger *slog.Logger
}

func NewRunner(cfg *RunnerConfig) *Runner {
	if cfg == nil {
		cfg = DefaultRunnerConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Exec runs c to completion. A non-zero exit is returned as an error along
// with a Result carrying the exit code.
func (r *Runner) Exec(ctx context.Context, kind string, c Command) (*Result, error) {
	timeout := r.cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := observability.StartToolSpan(ctx, kind, c.Name)
	defer span.End()

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	env := os.Environ()
	for k, v := range r.cfg.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = env
	cmd.Stdin = r.cfg.Stdin
	// nil writers go to the null device
	cmd.Stdout = r.cfg.Stdout
	cmd.Stderr = r.cfg.Stderr
	cmd.WaitDelay = waitDelay

	r.logger.DebugContext(ctx, "starting process", "kind", kind, "command", c.String())
	start := time.Now()
	err := cmd.Run()
	res := &Result{Command: c, Duration: time.Since(start)}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			res.ExitCode = exitErr.ExitCode()
		default:
			res.ExitCode = -1
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%s timed out after %s: %w", c.Name, timeout, err)
		} else {
			err = fmt.Errorf("%s: %w", c.String(), err)
		}
		observability.RecordToolResult(span, res.ExitCode, res.Duration)
		observability.RecordError(span, err)
		r.logger.DebugContext(ctx, "process failed", "kind", kind, "exit_code", res.ExitCode, "error", err)
		return res, err
	}

	observability.RecordToolResult(span, 0, res.Duration)
	r.logger.DebugContext(ctx, "process finished", "kind", kind, "duration", res.Duration)
	return res, nil
}
