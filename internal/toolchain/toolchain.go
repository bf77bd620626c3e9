package toolchain

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/efebarandurmaz/cstar/internal/config"
	"github.com/efebarandurmaz/cstar/internal/failure"
	"github.com/efebarandurmaz/cstar/internal/observability"
)

// Toolchain builds, links and runs translated programs.
type Toolchain struct {
	runner   *Runner
	compiler config.CompilerConfig
	linker   config.LinkerConfig
}

func New(compiler config.CompilerConfig, linker config.LinkerConfig, runner *Runner) *Toolchain {
	if runner == nil {
		runner = NewRunner(nil)
	}
	return &Toolchain{runner: runner, compiler: compiler, linker: linker}
}

// ExecutablePath derives the program path from the source path: its extension
// is replaced by ext, which may be empty.
func ExecutablePath(source, ext string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ext
}

// CompileCommand builds
//
//	<command> [-I<include>] <cpp> -w [<std>] -lm -o <exe>
func CompileCommand(c config.CompilerConfig, cppPath, exePath string) Command {
	var args []string
	if c.IncludePath != "" {
		args = append(args, "-I"+c.IncludePath)
	}
	args = append(args, cppPath, "-w")
	if c.Std != "" {
		args = append(args, c.Std)
	}
	args = append(args, "-lm", "-o", exePath)
	return Command{Name: c.Command, Args: args}
}

// LinkCommand passes the translated file to the linker script.
func LinkCommand(l config.LinkerConfig, cppPath string) Command {
	return Command{Name: l.Command, Args: []string{cppPath}}
}

// LinkerVersionCommand asks the linker script for its version.
func LinkerVersionCommand(l config.LinkerConfig) Command {
	return Command{Name: l.Command, Args: []string{"-v"}}
}

// RunCommand runs a built program. A bare file name is made relative to the
// working directory so it is not looked up on PATH.
func RunCommand(exePath string) Command {
	if !strings.ContainsRune(exePath, filepath.Separator) && !strings.ContainsRune(exePath, '/') {
		exePath = "." + string(filepath.Separator) + exePath
	}
	return Command{Name: exePath}
}

// Compile builds cppPath into an executable next to it. Any failure is a
// CompilerInvocationFailed; the translated file stays on disk.
func (t *Toolchain) Compile(ctx context.Context, cppPath string) (*Result, error) {
	exe := ExecutablePath(cppPath, t.compiler.ExecutableExt())
	res, err := t.runner.Exec(ctx, observability.SpanKindCompile, CompileCommand(t.compiler, cppPath, exe))
	if err != nil {
		return res, failure.New(failure.CompilerInvocationFailed, cppPath, err)
	}
	res.Executable = exe
	return res, nil
}

// Link runs the linker script over cppPath.
func (t *Toolchain) Link(ctx context.Context, cppPath string) (*Result, error) {
	res, err := t.runner.Exec(ctx, observability.SpanKindLink, LinkCommand(t.linker, cppPath))
	if err != nil {
		return res, failure.New(failure.LinkerInvocationFailed, cppPath, err)
	}
	return res, nil
}

// LinkerVersion prints the linker script version through the runner's output.
func (t *Toolchain) LinkerVersion(ctx context.Context) (*Result, error) {
	return t.runner.Exec(ctx, observability.SpanKindLink, LinkerVersionCommand(t.linker))
}

// Run executes a built program. Its exit status is reported but is not a
// failure of the build.
func (t *Toolchain) Run(ctx context.Context, exePath string) (*Result, error) {
	return t.runner.Exec(ctx, observability.SpanKindRun, RunCommand(exePath))
}
