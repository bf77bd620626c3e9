package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/efebarandurmaz/cstar/internal/failure"
)

// DefaultInput is translated when no .cstar argument is given.
const DefaultInput = "testfile.cstar"

type options struct {
	input         string
	compile       bool
	silent        bool
	version       bool
	link          bool
	linkerVersion bool
	configPath    string
	braceMode     string
	outExt        string
	noRun         bool
	verbose       bool
	stats         bool
	jsonReport    bool
	color         string
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &options{}
	cmd := newRootCmd(opts, stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !opts.silent {
		var fe *failure.Error
		if !errors.As(err, &fe) {
			// failures are reported where they happen
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
	}
	return failure.ExitCode(err)
}

func newRootCmd(opts *options, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cstarc [file.cstar]",
		Short: "Translate CStar source to C++ and optionally build it",
		Long: "cstarc translates a .cstar file into a C++ file next to it. With -c the result\n" +
			"is compiled and the program run; --lstdcst then passes it to the stdcstar linker.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = pickInput(args)
			return run(cmd.Context(), opts, stdin, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.BoolVarP(&opts.compile, "compile", "c", false, "Compile the translated file and run the program")
	f.BoolVarP(&opts.silent, "silent", "s", false, "Print nothing; only the exit code reports failure")
	f.BoolVarP(&opts.version, "version", "v", false, "Print version information and exit")
	f.BoolVar(&opts.link, "lstdcst", false, "Invoke the stdcstar linker after compilation")
	f.BoolVar(&opts.linkerVersion, "lstdcst-v", false, "Print the stdcstar linker version")
	f.StringVar(&opts.configPath, "config", "", "Config file path (default ./cstar.yaml if present)")
	f.StringVar(&opts.braceMode, "brace-mode", "", "Brace counting: legacy or lexical (overrides config)")
	f.StringVar(&opts.outExt, "out-ext", "", "Executable extension, or none (overrides config)")
	f.BoolVar(&opts.noRun, "no-run", false, "Do not run the program after compiling")
	f.BoolVar(&opts.verbose, "verbose", false, "Print keyword diagnostics and debug logs")
	f.BoolVar(&opts.stats, "stats", false, "Print a translation report")
	f.BoolVar(&opts.jsonReport, "json", false, "Print the translation report as JSON")
	f.StringVar(&opts.color, "color", "auto", "Colorize output: auto, on or off")

	return cmd
}

// pickInput returns the last argument naming a .cstar file. Other arguments
// are ignored.
func pickInput(args []string) string {
	input := DefaultInput
	for _, a := range args {
		if strings.HasSuffix(a, ".cstar") {
			input = a
		}
	}
	return input
}
