package entities

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// Issue is a structural defect found in raw document text.
type Issue struct {
	Kind    values.IssueKind `json:"kind" yaml:"kind"`
	Message string           `json:"message" yaml:"message"`
	Line    int              `json:"line,omitempty" yaml:"line,omitempty"`
}

// String renders the issue for logs and error details.
func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", i.Kind, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// HasIssue reports whether issues contains kind.
func HasIssue(issues []Issue, kind values.IssueKind) bool {
	for _, i := range issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}
