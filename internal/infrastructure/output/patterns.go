package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/reglet-dev/apmlc/internal/domain/patterns"
)

// PatternInfo is the serializable view of a registered pattern.
type PatternInfo struct {
	ID               string   `json:"id" yaml:"id"`
	Description      string   `json:"description" yaml:"description"`
	RequiredFields   []string `json:"required_fields,omitempty" yaml:"required_fields,omitempty"`
	SemanticKeywords []string `json:"semantic_keywords,omitempty" yaml:"semantic_keywords,omitempty"`
}

// PatternInfos converts registry definitions in registration order.
func PatternInfos(defs []patterns.Definition) []PatternInfo {
	infos := make([]PatternInfo, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, PatternInfo{
			ID:               d.ID,
			Description:      d.Description,
			RequiredFields:   d.RequiredFields,
			SemanticKeywords: d.SemanticKeywords,
		})
	}
	return infos
}

// FormatPatterns writes a pattern listing as table, json or yaml.
func FormatPatterns(format string, w io.Writer, infos []PatternInfo) error {
	switch format {
	case "table":
		return writePatternTable(w, infos)
	case "json":
		return NewJSONFormatter(w, true).encode(infos)
	case "yaml":
		return NewYAMLFormatter(w).encode(infos)
	default:
		return fmt.Errorf("unknown patterns format: %s (supported: table, json, yaml)", format)
	}
}

func writePatternTable(w io.Writer, infos []PatternInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(tw, "PATTERN\tREQUIRED\tDESCRIPTION"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range infos {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, joinOrDash(p.RequiredFields), p.Description); err != nil {
			return fmt.Errorf("failed to write pattern %s: %w", p.ID, err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}
