// Package services contains application use cases.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	apperrors "github.com/reglet-dev/apmlc/internal/application/errors"
	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/services"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// CompileDocumentUseCase orchestrates validation, analysis, rule-based generation,
// the generative fallback and normalization for one document.
// It holds no per-document state and is safe for concurrent use.
type CompileDocumentUseCase struct {
	validation      *ValidationRepairService
	parser          *services.DocumentParser
	analyzer        *services.PatternAnalyzer
	generator       *services.RuleBasedGenerator
	assembler       *services.ArtifactAssembler
	fallback        *FallbackAdapter
	enforcer        *services.ConsistencyEnforcer
	cache           ports.ArtifactCache
	metrics         ports.MetricsSink
	consent         *consentGate
	logger          *slog.Logger
	fallbackTimeout time.Duration
}

// NewCompileDocumentUseCase creates a new compile use case.
// cache, metrics and consent may be nil.
func NewCompileDocumentUseCase(
	validation *ValidationRepairService,
	parser *services.DocumentParser,
	analyzer *services.PatternAnalyzer,
	generator *services.RuleBasedGenerator,
	assembler *services.ArtifactAssembler,
	fallback *FallbackAdapter,
	enforcer *services.ConsistencyEnforcer,
	cache ports.ArtifactCache,
	metrics ports.MetricsSink,
	consent ports.ConsentPrompter,
	fallbackTimeout time.Duration,
	logger *slog.Logger,
) *CompileDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &CompileDocumentUseCase{
		validation:      validation,
		parser:          parser,
		analyzer:        analyzer,
		generator:       generator,
		assembler:       assembler,
		fallback:        fallback,
		enforcer:        enforcer,
		cache:           cache,
		metrics:         metrics,
		consent:         &consentGate{prompter: consent},
		fallbackTimeout: fallbackTimeout,
		logger:          logger,
	}
}

// Execute compiles one document. Metrics are recorded for failures too.
func (uc *CompileDocumentUseCase) Execute(ctx context.Context, req dto.CompileRequest) (*dto.CompileResponse, error) {
	startTime := time.Now()
	id := values.NewCompilationID()
	logger := uc.logger.With("compilation_id", id.String())
	if req.Source != "" {
		logger = logger.With("source", req.Source)
	}

	var metrics dto.CompileMetrics
	resp, err := uc.compile(ctx, req, logger, &metrics)
	metrics.Duration = time.Since(startTime)
	if err != nil {
		metrics.Failed = true
		uc.record(metrics)
		logger.Error("compilation failed", "error", err)
		return nil, err
	}

	resp.Metrics = metrics
	resp.Metadata = dto.ResponseMetadata{
		RequestID:     req.Metadata.RequestID,
		CompilationID: id.String(),
		Source:        req.Source,
		ProcessedAt:   time.Now(),
		Duration:      metrics.Duration,
	}
	uc.record(metrics)

	if req.Options.SessionID != "" && uc.cache != nil {
		if err := uc.cache.Put(ctx, req.Options.SessionID, resp.Artifact); err != nil {
			logger.Warn("failed to cache artifact", "session", req.Options.SessionID, "error", err)
		}
	}

	logger.Info("compilation complete",
		"strategy", resp.Artifact.StrategyUsed,
		"components", metrics.Components,
		"degraded", resp.Artifact.Degraded,
		"duration", metrics.Duration)
	return resp, nil
}

func (uc *CompileDocumentUseCase) compile(ctx context.Context, req dto.CompileRequest, logger *slog.Logger, metrics *dto.CompileMetrics) (*dto.CompileResponse, error) {
	// 1. Validate and repair
	if err := uc.checkRepairConsent(ctx, req.Text); err != nil {
		return nil, err
	}
	validated, err := uc.validation.Ensure(ctx, req.Text, req.Options.RepairTimeout)
	if err != nil {
		return nil, err
	}
	text, issues := validated.Text, validated.Issues
	metrics.Repaired = len(issues) > 0

	// 2. Parse
	doc, err := uc.parser.Parse(text)
	if err != nil {
		return nil, err
	}

	// 3. Classify
	analysis, err := uc.analyzer.Classify(doc)
	if err != nil {
		return nil, apperrors.NewAnalysisError("classification failed", err)
	}
	metrics.Strategy = analysis.Strategy
	metrics.Components = len(analysis.Components)
	metrics.Known = len(analysis.KnownPatterns)
	metrics.Unknown = len(analysis.UnknownPatterns)
	logger.Debug("document classified",
		"strategy", analysis.Strategy,
		"known", analysis.KnownPatterns,
		"unknown", analysis.UnknownPatterns)

	// 4. Rule-based generation
	gen := uc.generator.Generate(doc, analysis)
	metrics.ComponentErrors = len(gen.Errors)
	for _, e := range gen.Errors {
		logger.Warn("component generation failed", "error", e)
	}
	artifact := uc.assembler.Assemble(doc, gen.Fragments, analysis.Strategy)

	resp := &dto.CompileResponse{
		Analysis:        analysis,
		Issues:          issues,
		ComponentErrors: componentErrors(gen.Errors),
	}
	if validated.Redacted {
		logger.Warn("document repaired from redacted text")
		resp.Warnings = append(resp.Warnings, RedactedRepairWarning)
	}

	// 5. Generative fallback
	if analysis.Strategy.NeedsFallback() {
		metrics.FallbackCalled = true
		merged, warning := uc.applyFallback(ctx, req, text, doc, analysis, gen, artifact)
		if warning != "" {
			logger.Warn("fallback degraded", "reason", warning)
			resp.Warnings = append(resp.Warnings, warning)
			merged.Degraded = true
		}
		artifact = merged
	}
	metrics.Degraded = artifact.Degraded

	// 6. Normalize
	normalized, err := uc.enforcer.Normalize(artifact)
	if err != nil {
		var conflict *services.AliasConflictError
		if errors.As(err, &conflict) {
			cerr := apperrors.NewConsistencyError(conflict.Canonical, conflict.Alias, err)
			logger.Warn("artifact left un-normalized", "error", cerr)
			resp.Warnings = append(resp.Warnings, cerr.Error())
			normalized = artifact
		} else {
			return nil, err
		}
	}

	resp.Artifact = normalized
	return resp, nil
}

// applyFallback returns the merged artifact, or the rule-based one with a reason when the fallback did not run.
func (uc *CompileDocumentUseCase) applyFallback(
	ctx context.Context,
	req dto.CompileRequest,
	text string,
	doc *entities.Document,
	analysis *entities.AnalysisResult,
	gen *services.GenerationResult,
	base *entities.CompilationArtifact,
) (*entities.CompilationArtifact, string) {
	degraded := base.Clone()
	if req.Options.DisableFallback {
		return degraded, "generative fallback disabled"
	}
	if !uc.fallback.Available() {
		return degraded, "no generative backend configured"
	}

	ok, err := uc.consent.allow(ctx, uc.fallback.Provider())
	if err != nil {
		return degraded, fmt.Sprintf("consent prompt failed: %v", err)
	}
	if !ok {
		return degraded, "external generation declined"
	}

	timeout := req.Options.FallbackTimeout
	if timeout <= 0 {
		timeout = uc.fallbackTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := uc.fallback.Generate(ctx, FallbackInput{
		DocumentText: text,
		BaseMarkup:   base.Markup,
		Unresolved:   unresolvedList(analysis, gen),
	})
	if err != nil {
		return degraded, err.Error()
	}

	if analysis.Strategy.IsFullReplacement() {
		return uc.assembler.Replace(base, out.Markup, out.Script, out.Style), ""
	}

	merged := uc.assembler.Assemble(doc, services.MergeFallback(gen.Fragments, out.Fragment()), analysis.Strategy)
	if out.Style != "" {
		merged.Style += "\n\n" + out.Style
	}
	return merged, ""
}

// checkRepairConsent asks before a malformed document is sent out for repair.
func (uc *CompileDocumentUseCase) checkRepairConsent(ctx context.Context, text string) error {
	if !uc.validation.CanRepair() {
		return nil
	}
	issues := uc.validation.Detect(text)
	if len(issues) == 0 || entities.HasIssue(issues, values.IssueEmptyInput) {
		return nil
	}
	ok, err := uc.consent.allow(ctx, uc.fallback.Provider())
	if err != nil {
		return apperrors.NewUnrepairableDocument(issues, issues, fmt.Errorf("consent prompt failed: %w", err))
	}
	if !ok {
		return apperrors.NewUnrepairableDocument(issues, issues, errors.New("external repair declined"))
	}
	return nil
}

func (uc *CompileDocumentUseCase) record(m dto.CompileMetrics) {
	if uc.metrics != nil {
		uc.metrics.Record(m)
	}
}

// unresolvedList merges unknown pattern names with unresolved component refs.
func unresolvedList(analysis *entities.AnalysisResult, gen *services.GenerationResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{analysis.UnknownPatterns, gen.Unresolved} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

func componentErrors(errs []error) []dto.ComponentError {
	out := make([]dto.ComponentError, 0, len(errs))
	for _, err := range errs {
		ce := dto.ComponentError{Message: err.Error()}
		var missing *entities.MissingFieldsError
		var panicked *entities.GeneratorPanicError
		switch {
		case errors.As(err, &missing):
			ce.Component = missing.Ref.String()
			ce.Pattern = missing.Pattern
			ce.Fields = missing.Fields
		case errors.As(err, &panicked):
			ce.Component = panicked.Ref.String()
			ce.Pattern = panicked.Pattern
		}
		out = append(out, ce)
	}
	return out
}

// consentGate asks once per process and remembers the answer.
type consentGate struct {
	prompter ports.ConsentPrompter
	mu       sync.Mutex
	asked    bool
	granted  bool
}

func (g *consentGate) allow(ctx context.Context, provider string) (bool, error) {
	if g.prompter == nil {
		return true, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.asked {
		return g.granted, nil
	}
	granted, err := g.prompter.ConfirmExternalCall(ctx, provider)
	if err != nil {
		return false, err
	}
	g.asked, g.granted = true, granted
	return granted, nil
}
