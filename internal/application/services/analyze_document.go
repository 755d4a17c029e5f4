package services

import (
	"log/slog"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	apperrors "github.com/reglet-dev/apmlc/internal/application/errors"
	"github.com/reglet-dev/apmlc/internal/domain/services"
)

// AnalyzeDocumentUseCase validates a document and reports its pattern
// classification without generating code or calling external backends.
type AnalyzeDocumentUseCase struct {
	detector *services.IssueDetector
	parser   *services.DocumentParser
	analyzer *services.PatternAnalyzer
	logger   *slog.Logger
}

// NewAnalyzeDocumentUseCase creates a new analyze use case.
func NewAnalyzeDocumentUseCase(
	detector *services.IssueDetector,
	parser *services.DocumentParser,
	analyzer *services.PatternAnalyzer,
	logger *slog.Logger,
) *AnalyzeDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeDocumentUseCase{detector: detector, parser: parser, analyzer: analyzer, logger: logger}
}

// Execute detects issues, parses and classifies. Parse failures are reported,
// not returned; only invalid filter expressions and analysis faults are errors.
func (uc *AnalyzeDocumentUseCase) Execute(req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	filter, err := uc.buildFilter(req)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalyzeResponse{
		Source: req.Source,
		Issues: uc.detector.Detect(req.Text),
	}

	doc, err := uc.parser.Parse(req.Text)
	if err != nil {
		resp.ParseError = err.Error()
		uc.logger.Debug("document did not parse", "source", req.Source, "error", err)
		return resp, nil
	}

	analysis, err := uc.analyzer.Classify(doc)
	if err != nil {
		return nil, apperrors.NewAnalysisError("classification failed", err)
	}
	resp.Analysis = analysis
	resp.Components = filter.Apply(analysis.Components)
	return resp, nil
}

func (uc *AnalyzeDocumentUseCase) buildFilter(req dto.AnalyzeRequest) (*services.ComponentFilter, error) {
	filter := services.NewComponentFilter().
		WithSections(req.Sections).
		WithPatterns(req.Patterns).
		WithUnresolvedOnly(req.UnresolvedOnly)

	if req.FilterExpression != "" {
		program, err := services.CompileComponentFilter(req.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", "invalid filter expression", err.Error())
		}
		filter = filter.WithFilterExpression(program)
	}
	return filter, nil
}
