package values

import "fmt"

// IssueKind classifies a structural defect found in raw document text.
type IssueKind string

const (
	// IssueEmptyInput means the document has no content. It cannot be repaired.
	IssueEmptyInput IssueKind = "empty_input"
	// IssueMissingRequiredSection means the UI components section is absent.
	IssueMissingRequiredSection IssueKind = "missing_required_section"
	// IssueMalformedComponentBlock means a component block is unbalanced or missing braces.
	IssueMalformedComponentBlock IssueKind = "malformed_component_block"
	// IssueInconsistentIndentation means indentation mixes styles or widths.
	IssueInconsistentIndentation IssueKind = "inconsistent_indentation"
)

// IsRepairable returns false for issues that must fail the pipeline immediately.
func (k IssueKind) IsRepairable() bool {
	return k != IssueEmptyInput
}

// String returns the string representation
func (k IssueKind) String() string {
	return string(k)
}

// Validate returns an error if the issue kind is invalid
func (k IssueKind) Validate() error {
	switch k {
	case IssueEmptyInput, IssueMissingRequiredSection, IssueMalformedComponentBlock, IssueInconsistentIndentation:
		return nil
	default:
		return fmt.Errorf("invalid issue kind: %s", k)
	}
}
