package entities

import "github.com/reglet-dev/apmlc/internal/domain/values"

// CompilationArtifact is the compiled output for one document.
type CompilationArtifact struct {
	Title        string          `json:"title" yaml:"title"`
	Markup       string          `json:"markup" yaml:"markup"`
	Script       string          `json:"script" yaml:"script"`
	Style        string          `json:"style" yaml:"style"`
	Runtime      string          `json:"runtime" yaml:"runtime"`
	StrategyUsed values.Strategy `json:"strategy_used" yaml:"strategy_used"`
	Unresolved   []string        `json:"unresolved" yaml:"unresolved"`
	Degraded     bool            `json:"degraded" yaml:"degraded"`
}

// Clone returns a copy that shares no slices with the receiver.
func (a *CompilationArtifact) Clone() *CompilationArtifact {
	if a == nil {
		return nil
	}
	c := *a
	c.Unresolved = append([]string(nil), a.Unresolved...)
	return &c
}
