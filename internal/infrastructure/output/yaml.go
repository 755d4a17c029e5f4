package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/apmlc/internal/application/dto"
)

// YAMLFormatter formats compile results and reports as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the compile response as YAML.
func (f *YAMLFormatter) Format(resp *dto.CompileResponse) error {
	return f.encode(resp)
}

// FormatReport writes the analysis report as YAML.
func (f *YAMLFormatter) FormatReport(resp *dto.AnalyzeResponse) error {
	return f.encode(resp)
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
