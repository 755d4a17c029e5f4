package services

import (
	"testing"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClassifications() []entities.ComponentClassification {
	return []entities.ComponentClassification{
		{Ref: entities.ComponentRef{Section: "ui_components", Component: "login"}, ResolvedPattern: "form_input", Match: entities.MatchExact},
		{Ref: entities.ComponentRef{Section: "ui_components", Component: "feed"}, DeclaredPattern: "live_feed", Match: entities.MatchNone, ComplexKeywords: []string{"websocket"}},
		{Ref: entities.ComponentRef{Section: "admin", Component: "users"}, ResolvedPattern: "data_table", Match: entities.MatchSemantic},
	}
}

func names(classes []entities.ComponentClassification) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.Ref.Component)
	}
	return out
}

func Test_ComponentFilter_NoFilters(t *testing.T) {
	assert.Equal(t, []string{"login", "feed", "users"}, names(NewComponentFilter().Apply(sampleClassifications())))
}

func Test_ComponentFilter_Inclusion(t *testing.T) {
	tests := []struct {
		name   string
		filter *ComponentFilter
		want   []string
	}{
		{"by section", NewComponentFilter().WithSections([]string{"admin"}), []string{"users"}},
		{"by pattern", NewComponentFilter().WithPatterns([]string{"form_input"}), []string{"login"}},
		{"unresolved only", NewComponentFilter().WithUnresolvedOnly(true), []string{"feed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.filter.Apply(sampleClassifications())))
		})
	}
}

func Test_ComponentFilter_Expression(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{`match == "semantic"`, []string{"users"}},
		{`complex && "websocket" in keywords`, []string{"feed"}},
		{`resolved and section == "ui_components"`, []string{"login"}},
		{`declared startsWith "live"`, []string{"feed"}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			program, err := CompileComponentFilter(tt.expression)
			require.NoError(t, err)

			filter := NewComponentFilter().WithFilterExpression(program)
			assert.Equal(t, tt.want, names(filter.Apply(sampleClassifications())))
		})
	}
}

func Test_ComponentFilter_ExpressionReason(t *testing.T) {
	program, err := CompileComponentFilter(`pattern == "nothing"`)
	require.NoError(t, err)

	ok, reason := NewComponentFilter().WithFilterExpression(program).Matches(sampleClassifications()[0])
	assert.False(t, ok)
	assert.Equal(t, "excluded by --filter expression", reason)
}

func Test_CompileComponentFilter_Invalid(t *testing.T) {
	_, err := CompileComponentFilter(`name +`)
	assert.Error(t, err)

	_, err = CompileComponentFilter(`name`)
	assert.Error(t, err, "non-boolean expressions are rejected")

	_, err = CompileComponentFilter(`unknown_var == 1`)
	assert.Error(t, err)
}
