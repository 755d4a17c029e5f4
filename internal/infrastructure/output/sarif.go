package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/version"
)

// SARIFFormatter writes document findings as SARIF 2.1.0 JSON.
// Structural issues, component errors, unresolved components and degraded
// fallbacks each map to a rule; their occurrences map to results located in the source document.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout)
//	if err := formatter.FormatReport(report); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: writer}
}

// Format writes compile findings as SARIF.
func (f *SARIFFormatter) Format(resp *dto.CompileResponse) error {
	run := newRun()
	newSARIFMapper(resp.Metadata.Source).mapCompile(run, resp)
	return f.write(run)
}

// FormatReport writes analysis findings as SARIF.
func (f *SARIFFormatter) FormatReport(resp *dto.AnalyzeResponse) error {
	run := newRun()
	newSARIFMapper(resp.Source).mapReport(run, resp)
	return f.write(run)
}

func newRun() *sarif.Run {
	run := sarif.NewRunWithInformationURI("apmlc", "https://github.com/reglet-dev/apmlc")
	v := version.Get().Version
	run.Tool.Driver.Version = &v
	run.Tool.Driver.Organization = ptrString("reglet-dev")
	return run
}

func (f *SARIFFormatter) write(run *sarif.Run) error {
	report := sarif.NewReport()
	report.AddRun(run)

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}
