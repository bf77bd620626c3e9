package plugins

import (
	"context"
	"io"

	"github.com/efebarandurmaz/cstar/internal/ir"
)

// SourceFile is a single input file. Reader is consumed line by line and is
// owned by the caller, which also closes it.
type SourceFile struct {
	Path   string
	Reader io.Reader
}

// SourcePlugin scans a source file into a TranslationUnit.
type SourcePlugin interface {
	// Language returns the source language identifier (e.g. "cstar").
	Language() string
	// Parse performs the single forward pass over the file.
	Parse(ctx context.Context, file SourceFile) (*ir.TranslationUnit, error)
}

// FileExtensionsProvider is an optional interface for source plugins to declare
// which file extensions they accept (e.g. []string{".cstar"}).
type FileExtensionsProvider interface {
	FileExtensions() []string
}
