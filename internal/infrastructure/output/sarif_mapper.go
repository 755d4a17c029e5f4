package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// Rule IDs outside the structural issue kinds.
const (
	RuleUnresolvedComponent = "unresolved_component"
	RuleComponentError      = "component_error"
	RuleDegradedFallback    = "degraded_fallback"
	RuleParseError          = "parse_error"
)

type ruleInfo struct {
	description string
	level       string
}

var ruleCatalog = map[string]ruleInfo{
	string(values.IssueEmptyInput):              {"The document has no content.", "error"},
	string(values.IssueMissingRequiredSection):  {"The ui_components section is missing.", "error"},
	string(values.IssueMalformedComponentBlock): {"A component block has unbalanced braces.", "error"},
	string(values.IssueInconsistentIndentation): {"Indentation mixes styles or widths.", "warning"},
	RuleUnresolvedComponent:                     {"No registered pattern matches the component.", "note"},
	RuleComponentError:                          {"A pattern generator rejected the component configuration.", "error"},
	RuleDegradedFallback:                        {"The generative fallback failed and rule-based output was kept.", "warning"},
	RuleParseError:                              {"The document could not be parsed.", "error"},
}

type sarifMapper struct {
	source string
	cwd    string
	rules  map[string]bool
}

func newSARIFMapper(source string) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		source: source,
		cwd:    cwd,
		rules:  make(map[string]bool),
	}
}

func (m *sarifMapper) mapCompile(run *sarif.Run, resp *dto.CompileResponse) {
	for _, issue := range resp.Issues {
		// Issues on a compile response were repaired, so they are informational.
		m.addResult(run, string(issue.Kind), "note", "Repaired: "+issue.Message, issue.Line)
	}
	for _, ce := range resp.ComponentErrors {
		m.addResult(run, RuleComponentError, "", fmt.Sprintf("%s: %s", ce.Component, ce.Message), 0)
	}
	for _, ref := range resp.Artifact.Unresolved {
		m.addResult(run, RuleUnresolvedComponent, "", fmt.Sprintf("Component %s has no registered pattern", ref), 0)
	}
	if resp.Artifact.Degraded {
		for _, w := range resp.Warnings {
			m.addResult(run, RuleDegradedFallback, "", w, 0)
		}
	}
	m.addArtifact(run)

	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(len(resp.ComponentErrors) == 0)
	m.finishInvocation(run, invocation, map[string]interface{}{
		"compilationId": resp.Metadata.CompilationID,
		"strategy":      string(resp.Artifact.StrategyUsed),
		"degraded":      resp.Artifact.Degraded,
	})
}

func (m *sarifMapper) mapReport(run *sarif.Run, resp *dto.AnalyzeResponse) {
	for _, issue := range resp.Issues {
		m.addResult(run, string(issue.Kind), "", issue.Message, issue.Line)
	}
	if resp.ParseError != "" {
		m.addResult(run, RuleParseError, "", resp.ParseError, 0)
	}
	for _, c := range resp.Components {
		if c.Resolved() {
			continue
		}
		m.addResult(run, RuleUnresolvedComponent, "", unresolvedMessage(c), 0)
	}
	m.addArtifact(run)

	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(resp.Valid())
	props := map[string]interface{}{}
	if resp.Analysis != nil {
		props["strategy"] = string(resp.Analysis.Strategy)
	}
	m.finishInvocation(run, invocation, props)
}

func unresolvedMessage(c entities.ComponentClassification) string {
	if c.DeclaredPattern != "" {
		return fmt.Sprintf("Component %s declares unknown pattern %q", c.Ref, c.DeclaredPattern)
	}
	return fmt.Sprintf("Component %s has no registered pattern", c.Ref)
}

// addResult registers the rule on first use and appends a result.
// An empty level uses the rule's default.
func (m *sarifMapper) addResult(run *sarif.Run, ruleID, level, message string, line int) {
	m.addRule(run, ruleID)

	result := sarif.NewRuleResult(ruleID)
	if level == "" {
		level = ruleCatalog[ruleID].level
	}
	result.Level = level
	result.Kind = "fail"
	if level == "note" {
		result.Kind = "informational"
	}
	result.Message = sarif.NewTextMessage(message)

	if loc := m.location(line); loc != nil {
		result.Locations = []*sarif.Location{loc}
	}
	run.AddResult(result)
}

func (m *sarifMapper) addRule(run *sarif.Run, ruleID string) {
	if m.rules[ruleID] {
		return
	}
	m.rules[ruleID] = true

	info, ok := ruleCatalog[ruleID]
	if !ok {
		info = ruleInfo{description: ruleID, level: "warning"}
	}

	rule := sarif.NewReportingDescriptor().WithID(ruleID)
	rule.WithName(ruleID)
	rule.WithShortDescription(&sarif.MultiformatMessageString{Text: ptrString(info.description)})
	rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: info.level})
	run.Tool.Driver.AddRule(rule)
}

func (m *sarifMapper) location(line int) *sarif.Location {
	if m.source == "" {
		return nil
	}
	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(m.source)))
	if line > 0 {
		pLoc.WithRegion(sarif.NewRegion().WithStartLine(line))
	}
	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

func (m *sarifMapper) addArtifact(run *sarif.Run) {
	if m.source == "" {
		return
	}
	run.AddArtifact(sarif.NewArtifact().
		WithLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(m.source))))
}

func (m *sarifMapper) finishInvocation(run *sarif.Run, invocation *sarif.Invocation, metadata map[string]interface{}) {
	if m.cwd != "" {
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI("file://" + filepath.ToSlash(m.cwd))
	}
	props := sarif.NewPropertyBag()
	for k, v := range metadata {
		props.Add(k, v)
	}
	invocation.WithProperties(props)
	run.AddInvocation(invocation)
}

// normalizeURI converts a file path to a SARIF-compliant URI.
func (m *sarifMapper) normalizeURI(path string) string {
	if path == "-" {
		return "stdin"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}
