package output

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// RuntimeCDN is where the page loads the runtime named by the artifact's marker.
const RuntimeCDN = "https://unpkg.com/%s/dist/vue.global.js"

// HTMLFormatter writes the compiled artifact as a standalone page.
type HTMLFormatter struct {
	writer io.Writer
}

// NewHTMLFormatter creates a new HTML formatter.
func NewHTMLFormatter(w io.Writer) *HTMLFormatter {
	return &HTMLFormatter{writer: w}
}

// Format writes the page for resp.Artifact.
func (f *HTMLFormatter) Format(resp *dto.CompileResponse) error {
	if resp == nil || resp.Artifact == nil {
		return fmt.Errorf("no artifact to render")
	}
	_, err := io.WriteString(f.writer, RenderPage(resp.Artifact))
	return err
}

// RenderPage assembles the full HTML document for an artifact.
func RenderPage(a *entities.CompilationArtifact) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("  <meta charset=\"UTF-8\">\n")
	sb.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "  <title>%s</title>\n", html.EscapeString(a.Title))
	fmt.Fprintf(&sb, "  <script src=\"%s\"></script>\n", fmt.Sprintf(RuntimeCDN, a.Runtime))
	sb.WriteString("  <style>\n")
	writeIndented(&sb, a.Style, "    ")
	sb.WriteString("  </style>\n")
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	writeIndented(&sb, a.Markup, "  ")
	sb.WriteString("  <script>\n")
	writeIndented(&sb, a.Script, "    ")
	sb.WriteString("  </script>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	return sb.String()
}

func writeIndented(sb *strings.Builder, text, prefix string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
}
