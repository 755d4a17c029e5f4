package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/apmlc/internal/application/dto"
)

// JSONFormatter formats compile results and reports as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: indent}
}

// Format writes the compile response as JSON.
func (f *JSONFormatter) Format(resp *dto.CompileResponse) error {
	return f.encode(resp)
}

// FormatReport writes the analysis report as JSON.
func (f *JSONFormatter) FormatReport(resp *dto.AnalyzeResponse) error {
	return f.encode(resp)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetEscapeHTML(false)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
