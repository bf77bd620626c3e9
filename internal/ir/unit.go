package ir

// TranslationUnit is the per-run intermediate form produced by a source plugin
// and consumed by a target plugin. A fresh unit is built for every input file
// and discarded once the output has been written.
type TranslationUnit struct {
	Path      string      `json:"path"`
	Includes  []string    `json:"includes,omitempty"`
	Functions []*Function `json:"functions,omitempty"`
	// Body holds every line destined for the entry function, plain
	// passthrough lines and entry-block lines interleaved in input order.
	Body     []BodyLine `json:"body,omitempty"`
	UsesArgs bool       `json:"uses_args"`

	// Unterminated names the block kind ("entry" or "function") that was still
	// open at end of input. Empty when every block closed.
	Unterminated string `json:"unterminated,omitempty"`

	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
	Stats       Stats             `json:"stats"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewTranslationUnit returns an empty unit for the given input path.
func NewTranslationUnit(path string) *TranslationUnit {
	return &TranslationUnit{
		Path:     path,
		Metadata: map[string]string{},
	}
}

// Function is an auxiliary function block in encounter order.
type Function struct {
	// Line is the 1-based line of the signature in the input.
	Line int `json:"line"`
	// Signature is the declaration line with the function marker removed.
	Signature string   `json:"signature"`
	Body      []string `json:"body,omitempty"`
	// Inline is set when the signature line opened and closed the block
	// itself; such a function is emitted as its signature line alone.
	Inline bool `json:"inline,omitempty"`
}

// BodyKind tells where a body line came from.
type BodyKind string

const (
	BodyPlain BodyKind = "plain"
	BodyEntry BodyKind = "entry"
)

// BodyLine is one rewritten line of the entry function body.
type BodyLine struct {
	Line int      `json:"line"`
	Kind BodyKind `json:"kind"`
	Text string   `json:"text"`
}

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Diagnostic codes.
const (
	CodeUnknownImportKind = "unknown-import-kind"
	CodeKeyword           = "keyword"
)

// Diagnostic is a non-fatal observation made while scanning. Diagnostics never
// alter control flow.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// Stats counts how input lines were classified.
type Stats struct {
	Lines         int `json:"lines"`
	PlainLines    int `json:"plain_lines"`
	EntryLines    int `json:"entry_lines"`
	FunctionLines int `json:"function_lines"`
	Imports       int `json:"imports"`
	Includes      int `json:"includes"`
	DroppedLines  int `json:"dropped_lines"`
}

// AddDiagnostic appends a diagnostic to the unit.
func (u *TranslationUnit) AddDiagnostic(sev Severity, code string, line int, msg string) {
	u.Diagnostics = append(u.Diagnostics, Diagnostic{
		Severity: sev,
		Code:     code,
		Line:     line,
		Message:  msg,
	})
}

// Warnings returns the warning-level diagnostics in order.
func (u *TranslationUnit) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range u.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// EntryBody returns the lines collected from inside entry blocks, in order.
func (u *TranslationUnit) EntryBody() []string {
	var out []string
	for _, b := range u.Body {
		if b.Kind == BodyEntry {
			out = append(out, b.Text)
		}
	}
	return out
}

// BodyText returns every body line text in emission order.
func (u *TranslationUnit) BodyText() []string {
	out := make([]string, 0, len(u.Body))
	for _, b := range u.Body {
		out = append(out, b.Text)
	}
	return out
}

// FunctionLineCount returns the number of body lines across all functions.
func (u *TranslationUnit) FunctionLineCount() int {
	n := 0
	for _, fn := range u.Functions {
		n += len(fn.Body)
	}
	return n
}
