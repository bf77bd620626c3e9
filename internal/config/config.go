package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Compiler  CompilerConfig  `mapstructure:"compiler"`
	Linker    LinkerConfig    `mapstructure:"linker"`
	Toolchain ToolchainConfig `mapstructure:"toolchain"`
	Transpile TranspileConfig `mapstructure:"transpile"`
	Rewrite   RewriteConfig   `mapstructure:"rewrite"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type CompilerConfig struct {
	// Command is the C++ compiler. CXX overrides it.
	Command     string `mapstructure:"command"`
	IncludePath string `mapstructure:"include_path"`
	Std         string `mapstructure:"std"`
	// OutputExt is appended to the executable name; "none" means no extension.
	OutputExt string `mapstructure:"output_ext"`
	// Run executes the built program after a successful compile.
	Run bool `mapstructure:"run"`
}

// ExecutableExt resolves OutputExt, mapping "none" to the empty string.
func (c CompilerConfig) ExecutableExt() string {
	if strings.EqualFold(c.OutputExt, "none") {
		return ""
	}
	return c.OutputExt
}

type LinkerConfig struct {
	Command string `mapstructure:"command"`
}

type ToolchainConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type TranspileConfig struct {
	BraceMode      string `mapstructure:"brace_mode"`
	ReportKeywords bool   `mapstructure:"report_keywords"`
}

// RewriteConfig lists extra rewrite rules applied after the built-in ones.
type RewriteConfig struct {
	Rules []RewriteRule `mapstructure:"rules"`
}

type RewriteRule struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
	Replace string `mapstructure:"replace"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	// Endpoint is the OTLP gRPC endpoint; empty disables export.
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// DefaultConfigName is looked up in the working directory when no path is given.
const DefaultConfigName = "cstar"

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("compiler.command", "g++")
	v.SetDefault("compiler.std", "-std=gnu++23")
	v.SetDefault("compiler.run", true)
	if runtime.GOOS == "windows" {
		v.SetDefault("compiler.include_path", "D:/CStar/include")
		v.SetDefault("compiler.output_ext", ".exe")
		v.SetDefault("linker.command", "linker.bat")
	} else {
		v.SetDefault("compiler.include_path", "")
		v.SetDefault("compiler.output_ext", ".out")
		v.SetDefault("linker.command", "linker.sh")
	}
	v.SetDefault("toolchain.timeout", 5*time.Minute)
	v.SetDefault("transpile.brace_mode", "legacy")
	v.SetDefault("transpile.report_keywords", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("tracing.service_name", "cstarc")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_rate", 1.0)
}

// Default returns the configuration used when no file or environment applies.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Compiler.Command == "" {
		warnings = append(warnings, "compiler.command is empty")
	}
	switch strings.ToLower(c.Transpile.BraceMode) {
	case "", "legacy", "lexical":
	default:
		warnings = append(warnings, fmt.Sprintf("transpile.brace_mode '%s' is not 'legacy' or 'lexical'", c.Transpile.BraceMode))
	}
	if c.Toolchain.Timeout <= 0 {
		warnings = append(warnings, fmt.Sprintf("toolchain.timeout %s is not positive", c.Toolchain.Timeout))
	}
	for i, r := range c.Rewrite.Rules {
		if r.Pattern == "" {
			warnings = append(warnings, fmt.Sprintf("rewrite.rules[%d] (%s) has an empty pattern", i, r.Name))
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		warnings = append(warnings, fmt.Sprintf("log.format '%s' is not 'text' or 'json'", c.Log.Format))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
		warnings = append(warnings, fmt.Sprintf("tracing.sample_rate %.2f is outside [0.0, 1.0]", c.Tracing.SampleRate))
	}

	return warnings
}

// Load reads configuration from a .env file, the config file and the
// environment. An empty path looks for cstar.yaml in the working directory and
// falls back to defaults when there is none; an explicit path must exist.
func Load(path string) (*Config, error) {
	// a missing .env is not an error
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("CSTAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("compiler.command", "CSTAR_COMPILER_COMMAND", "CXX"); err != nil {
		return nil, fmt.Errorf("binding CXX: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

