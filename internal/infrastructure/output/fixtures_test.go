package output

import (
	"time"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

func sampleCompileResponse() *dto.CompileResponse {
	return &dto.CompileResponse{
		Artifact: &entities.CompilationArtifact{
			Title:        "Login <Demo>",
			Markup:       "<div id=\"app\">\n  <form @submit.prevent=\"submitLogin\"></form>\n</div>",
			Script:       "const { createApp } = Vue;",
			Style:        ".app { margin: 0; }",
			Runtime:      "vue@3",
			StrategyUsed: values.StrategyHybrid,
			Unresolved:   []string{"ui_components.ticker"},
			Degraded:     true,
		},
		Analysis: &entities.AnalysisResult{
			Strategy:        values.StrategyHybrid,
			KnownPatterns:   []string{"form_input"},
			UnknownPatterns: []string{"stock_ticker"},
			Components: []entities.ComponentClassification{
				{
					Ref:             entities.ComponentRef{Section: "ui_components", Component: "login_form"},
					DeclaredPattern: "form_input",
					ResolvedPattern: "form_input",
					Match:           entities.MatchExact,
				},
				{
					Ref:             entities.ComponentRef{Section: "ui_components", Component: "ticker"},
					DeclaredPattern: "stock_ticker",
					Match:           entities.MatchNone,
					ComplexKeywords: []string{"websocket"},
				},
			},
			Complex: true,
		},
		Issues: []entities.Issue{
			{Kind: values.IssueMalformedComponentBlock, Message: "unbalanced braces", Line: 4},
		},
		ComponentErrors: []dto.ComponentError{
			{Component: "ui_components.dialog", Pattern: "modal", Message: "missing required fields", Fields: []string{"visible_when"}},
		},
		Warnings: []string{"generative fallback failed: timed out"},
		Metrics: dto.CompileMetrics{
			Strategy: values.StrategyHybrid,
			Duration: 42 * time.Millisecond,
			Degraded: true,
		},
		Metadata: dto.ResponseMetadata{
			RequestID:     "req-1",
			CompilationID: "cmp-1",
			Source:        "login.apml",
			ProcessedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
}

func sampleAnalyzeResponse() *dto.AnalyzeResponse {
	resp := sampleCompileResponse()
	return &dto.AnalyzeResponse{
		Source:     "login.apml",
		Issues:     []entities.Issue{{Kind: values.IssueInconsistentIndentation, Message: "mixed tabs and spaces", Line: 7}},
		Analysis:   resp.Analysis,
		Components: resp.Analysis.Components,
	}
}
