package services

import (
	"errors"
	"testing"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	apperrors "github.com/reglet-dev/apmlc/internal/application/errors"
	"github.com/reglet-dev/apmlc/internal/domain/patterns"
	"github.com/reglet-dev/apmlc/internal/domain/services"
	"github.com/reglet-dev/apmlc/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *AnalyzeDocumentUseCase {
	return NewAnalyzeDocumentUseCase(
		services.NewIssueDetector(),
		services.NewDocumentParser(),
		services.NewPatternAnalyzer(patterns.NewDefaultRegistry()),
		nil,
	)
}

func TestAnalyzeDocument_Classifies(t *testing.T) {
	resp, err := newTestAnalyzer().Execute(dto.AnalyzeRequest{Source: "hybrid.apml", Text: hybridDoc})
	require.NoError(t, err)

	assert.True(t, resp.Valid())
	assert.Equal(t, values.StrategyHybrid, resp.Analysis.Strategy)
	assert.Len(t, resp.Components, 2)
}

func TestAnalyzeDocument_Filters(t *testing.T) {
	tests := []struct {
		name string
		req  dto.AnalyzeRequest
		want []string
	}{
		{"unresolved only", dto.AnalyzeRequest{UnresolvedOnly: true}, []string{"live_feed"}},
		{"by pattern", dto.AnalyzeRequest{Patterns: []string{"form_input"}}, []string{"login_form"}},
		{"by expression", dto.AnalyzeRequest{FilterExpression: `resolved && pattern == "form_input"`}, []string{"login_form"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Text = hybridDoc
			resp, err := newTestAnalyzer().Execute(tt.req)
			require.NoError(t, err)

			var names []string
			for _, c := range resp.Components {
				names = append(names, c.Ref.Component)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestAnalyzeDocument_InvalidFilter(t *testing.T) {
	_, err := newTestAnalyzer().Execute(dto.AnalyzeRequest{Text: hybridDoc, FilterExpression: "pattern =="})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "filter", verr.Field)
}

func TestAnalyzeDocument_ReportsParseFailure(t *testing.T) {
	resp, err := newTestAnalyzer().Execute(dto.AnalyzeRequest{Text: unclosedDoc})
	require.NoError(t, err)

	assert.False(t, resp.Valid())
	assert.NotEmpty(t, resp.Issues)
	assert.Contains(t, resp.ParseError, "unterminated block")
	assert.Nil(t, resp.Analysis)
}
