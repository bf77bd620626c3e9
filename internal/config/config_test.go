package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Compiler.Command != "g++" {
		t.Errorf("expected g++, got %s", cfg.Compiler.Command)
	}
	if cfg.Compiler.Std != "-std=gnu++23" {
		t.Errorf("unexpected std flag %s", cfg.Compiler.Std)
	}
	if !cfg.Compiler.Run {
		t.Error("expected run enabled by default")
	}
	if cfg.Toolchain.Timeout != 5*time.Minute {
		t.Errorf("unexpected timeout %s", cfg.Toolchain.Timeout)
	}
	if cfg.Transpile.BraceMode != "legacy" {
		t.Errorf("expected legacy brace mode, got %s", cfg.Transpile.BraceMode)
	}
	wantExt := ".out"
	if runtime.GOOS == "windows" {
		wantExt = ".exe"
	}
	if cfg.Compiler.OutputExt != wantExt {
		t.Errorf("expected output ext %s, got %s", wantExt, cfg.Compiler.OutputExt)
	}
	if warnings := cfg.Validate(); len(warnings) != 0 {
		t.Errorf("defaults should have no warnings, got %v", warnings)
	}
}

func TestExecutableExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".out", ".out"},
		{".exe", ".exe"},
		{"none", ""},
		{"NONE", ""},
		{"", ""},
	}
	for _, tt := range tests {
		c := CompilerConfig{OutputExt: tt.ext}
		if got := c.ExecutableExt(); got != tt.want {
			t.Errorf("ExecutableExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty compiler", func(c *Config) { c.Compiler.Command = "" }, "compiler.command"},
		{"bad brace mode", func(c *Config) { c.Transpile.BraceMode = "smart" }, "brace_mode"},
		{"zero timeout", func(c *Config) { c.Toolchain.Timeout = 0 }, "timeout"},
		{"empty rule pattern", func(c *Config) {
			c.Rewrite.Rules = []RewriteRule{{Name: "cout"}}
		}, "rewrite.rules[0]"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			found := false
			for _, w := range cfg.Validate() {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected warning mentioning %q, got %v", tt.want, cfg.Validate())
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cstar.yaml")
	content := `compiler:
  command: clang++
  include_path: /opt/cstar/include
  output_ext: none
toolchain:
  timeout: 30s
transpile:
  brace_mode: lexical
rewrite:
  rules:
    - name: cout
      pattern: 'System::out\.println\((.*)\);'
      replace: 'std::cout << $1 << std::endl;'
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CXX", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Compiler.Command != "clang++" {
		t.Errorf("expected clang++, got %s", cfg.Compiler.Command)
	}
	if cfg.Compiler.IncludePath != "/opt/cstar/include" {
		t.Errorf("unexpected include path %s", cfg.Compiler.IncludePath)
	}
	if cfg.Compiler.ExecutableExt() != "" {
		t.Errorf("expected no executable extension, got %q", cfg.Compiler.ExecutableExt())
	}
	if cfg.Toolchain.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Toolchain.Timeout)
	}
	if cfg.Transpile.BraceMode != "lexical" {
		t.Errorf("expected lexical, got %s", cfg.Transpile.BraceMode)
	}
	if len(cfg.Rewrite.Rules) != 1 || cfg.Rewrite.Rules[0].Name != "cout" {
		t.Fatalf("unexpected rules %+v", cfg.Rewrite.Rules)
	}
	if cfg.Rewrite.Rules[0].Replace != "std::cout << $1 << std::endl;" {
		t.Errorf("unexpected replace %q", cfg.Rewrite.Rules[0].Replace)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %s", cfg.Log.Level)
	}
	if cfg.Compiler.Std != "-std=gnu++23" {
		t.Errorf("expected default std to survive, got %s", cfg.Compiler.Std)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CXX", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Compiler.Command != "g++" {
		t.Errorf("expected default compiler, got %s", cfg.Compiler.Command)
	}
}

func TestLoadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CXX", "clang++-18")
	t.Setenv("CSTAR_TRANSPILE_BRACE_MODE", "lexical")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Compiler.Command != "clang++-18" {
		t.Errorf("expected CXX to set compiler, got %s", cfg.Compiler.Command)
	}
	if cfg.Transpile.BraceMode != "lexical" {
		t.Errorf("expected env brace mode, got %s", cfg.Transpile.BraceMode)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CXX", "")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CSTAR_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("CSTAR_LOG_LEVEL") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected .env level debug, got %s", cfg.Log.Level)
	}
}
