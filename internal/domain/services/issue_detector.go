package services

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// IssueDetector finds structural defects in raw APML text before parsing.
type IssueDetector struct{}

// NewIssueDetector creates a new issue detector.
func NewIssueDetector() *IssueDetector {
	return &IssueDetector{}
}

// Detect returns the issues found in text, in a stable order.
// Blank text yields a single EmptyInput issue.
func (d *IssueDetector) Detect(text string) []entities.Issue {
	if strings.TrimSpace(text) == "" {
		return []entities.Issue{{Kind: values.IssueEmptyInput, Message: "document is empty"}}
	}

	var issues []entities.Issue
	if !hasUIComponents(text) {
		issues = append(issues, entities.Issue{
			Kind:    values.IssueMissingRequiredSection,
			Message: "missing required section: UI Components",
		})
	}
	issues = append(issues, detectMalformedBlocks(text)...)
	if issue, ok := detectIndentation(text); ok {
		issues = append(issues, issue)
	}
	return issues
}

func hasUIComponents(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isSectionHeader(trimmed) && sectionName(trimmed) == entities.UIComponentsSection {
			return true
		}
		if key, rest, ok := splitKey(trimmed); ok && key == entities.UIComponentsSection && (rest == "" || strings.HasPrefix(rest, "{")) {
			return true
		}
	}
	return false
}

func detectMalformedBlocks(text string) []entities.Issue {
	var issues []entities.Issue
	if strings.Contains(text, "type:") && !strings.Contains(text, "{") {
		issues = append(issues, entities.Issue{
			Kind:    values.IssueMalformedComponentBlock,
			Message: "component types are declared but no block is opened",
		})
	}

	depth, openedAt := 0, 0
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for lineNo := 1; sc.Scan(); lineNo++ {
		before := depth
		next, ok := braceDepth(sc.Text(), depth)
		if !ok {
			issues = append(issues, entities.Issue{
				Kind:    values.IssueMalformedComponentBlock,
				Message: "closing brace without a matching opening brace",
				Line:    lineNo,
			})
			next = 0
		}
		if before == 0 && next > 0 {
			openedAt = lineNo
		}
		depth = next
	}
	if depth > 0 {
		issues = append(issues, entities.Issue{
			Kind:    values.IssueMalformedComponentBlock,
			Message: fmt.Sprintf("block is never closed (%d unclosed brace(s))", depth),
			Line:    openedAt,
		})
	}
	return issues
}

// detectIndentation flags mixed tabs and spaces, or space indents that are not
// a multiple of the smallest one in the document.
func detectIndentation(text string) (entities.Issue, bool) {
	type indent struct {
		spaces int
		line   int
	}
	var indents []indent
	usesTabs, usesSpaces := false, false
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if lead == "" {
			continue
		}
		hasTab := strings.Contains(lead, "\t")
		hasSpace := strings.Contains(lead, " ")
		if hasTab && hasSpace {
			return entities.Issue{Kind: values.IssueInconsistentIndentation, Message: "line mixes tabs and spaces", Line: i + 1}, true
		}
		usesTabs = usesTabs || hasTab
		usesSpaces = usesSpaces || hasSpace
		if hasSpace {
			indents = append(indents, indent{spaces: len(lead), line: i + 1})
		}
	}
	if usesTabs && usesSpaces {
		return entities.Issue{Kind: values.IssueInconsistentIndentation, Message: "document mixes tab and space indentation"}, true
	}

	unit := 0
	for _, in := range indents {
		if unit == 0 || in.spaces < unit {
			unit = in.spaces
		}
	}
	for _, in := range indents {
		if in.spaces%unit != 0 {
			return entities.Issue{
				Kind:    values.IssueInconsistentIndentation,
				Message: fmt.Sprintf("indent of %d spaces is not a multiple of %d", in.spaces, unit),
				Line:    in.line,
			}, true
		}
	}
	return entities.Issue{}, false
}
