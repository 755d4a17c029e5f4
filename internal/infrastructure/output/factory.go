package output

import (
	"fmt"
	"io"

	"github.com/reglet-dev/apmlc/internal/application/ports"
)

var _ ports.FormatterFactory = (*FormatterFactory)(nil)

// FormatterFactory implements ports.FormatterFactory.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// Create returns a compile-result formatter for the given format name.
func (f *FormatterFactory) Create(format string, writer io.Writer) (ports.OutputFormatter, error) {
	switch format {
	case "html":
		return NewHTMLFormatter(writer), nil
	case "table":
		return NewTableFormatter(writer), nil
	case "json":
		return NewJSONFormatter(writer, true), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	case "sarif":
		return NewSARIFFormatter(writer), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: %v)", format, f.SupportedFormats())
	}
}

// CreateReport returns an analysis-report formatter for the given format name.
func (f *FormatterFactory) CreateReport(format string, writer io.Writer) (ports.ReportFormatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(writer), nil
	case "json":
		return NewJSONFormatter(writer, true), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	case "sarif":
		return NewSARIFFormatter(writer), nil
	default:
		return nil, fmt.Errorf("unknown report format: %s (supported: %v)", format, f.SupportedReportFormats())
	}
}

// SupportedFormats returns the compile output formats.
func (f *FormatterFactory) SupportedFormats() []string {
	return []string{"html", "table", "json", "yaml", "sarif"}
}

// SupportedReportFormats returns the report output formats.
func (f *FormatterFactory) SupportedReportFormats() []string {
	return []string{"table", "json", "yaml", "sarif"}
}
