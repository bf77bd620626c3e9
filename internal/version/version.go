// Package version holds the compiler and language version identifiers.
package version

const (
	Name            = "CStar Compiler"
	Version         = "1.5.9"
	LanguageVersion = "CStar26 Debug 3"
	License         = "MIT License"
)

// Line is the version line printed by --version.
func Line() string {
	return "Version: " + Version + "; Language version: " + LanguageVersion
}
