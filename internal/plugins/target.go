package plugins

import (
	"context"
	"io"

	"github.com/efebarandurmaz/cstar/internal/ir"
)

// TargetPlugin serializes a TranslationUnit as host-language source.
type TargetPlugin interface {
	// Language returns the target language identifier (e.g. "cpp").
	Language() string
	// OutputExtension is the extension, with dot, of the emitted file.
	OutputExtension() string
	// Generate writes the assembled document to w.
	Generate(ctx context.Context, unit *ir.TranslationUnit, w io.Writer) error
}
