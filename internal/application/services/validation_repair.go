package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/reglet-dev/apmlc/internal/application/errors"
	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/services"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

const (
	// RepairSystemDirective instructs the repair backend to return APML only.
	RepairSystemDirective = "You are an APML syntax expert. Fix the provided APML content to resolve the listed issues. " +
		"Return only the corrected APML, no explanations."

	// RedactedRepairWarning is reported when a repair was made from masked text.
	RedactedRepairWarning = "document was repaired from redacted text; redacted values in the artifact must be restored by hand"

	// DefaultRepairMaxTokens bounds the repair response.
	DefaultRepairMaxTokens = 2000
)

// ValidationRepairService detects structural issues and asks a repair backend to fix them once.
type ValidationRepairService struct {
	detector  *services.IssueDetector
	repairer  ports.RepairCapability
	scrubber  ports.TextScrubber
	logger    *slog.Logger
	maxTokens int
	timeout   time.Duration
}

// NewValidationRepairService creates a validation service. A nil repairer disables repair.
func NewValidationRepairService(
	detector *services.IssueDetector,
	repairer ports.RepairCapability,
	scrubber ports.TextScrubber,
	maxTokens int,
	timeout time.Duration,
	logger *slog.Logger,
) *ValidationRepairService {
	if logger == nil {
		logger = slog.Default()
	}
	if detector == nil {
		detector = services.NewIssueDetector()
	}
	if maxTokens <= 0 {
		maxTokens = DefaultRepairMaxTokens
	}
	return &ValidationRepairService{
		detector:  detector,
		repairer:  repairer,
		scrubber:  scrubber,
		maxTokens: maxTokens,
		timeout:   timeout,
		logger:    logger,
	}
}

// Detect returns the issues in text without attempting repair.
func (s *ValidationRepairService) Detect(text string) []entities.Issue {
	return s.detector.Detect(text)
}

// CanRepair reports whether a repair backend is configured.
func (s *ValidationRepairService) CanRepair() bool {
	return s.repairer != nil
}

// Validated is document text that passed detection.
type Validated struct {
	Text   string
	Issues []entities.Issue // found in the original text
	// Redacted is set when values were masked in the text sent for repair,
	// so the repaired text may carry redaction placeholders.
	Redacted bool
}

// Ensure returns text that passes detection, repairing it at most once.
func (s *ValidationRepairService) Ensure(ctx context.Context, text string, timeout time.Duration) (*Validated, error) {
	issues := s.detector.Detect(text)
	if len(issues) == 0 {
		return &Validated{Text: text}, nil
	}
	if entities.HasIssue(issues, values.IssueEmptyInput) {
		return nil, apperrors.NewValidationError("document", "document is empty")
	}
	if s.repairer == nil {
		return nil, apperrors.NewUnrepairableDocument(issues, issues, fmt.Errorf("no repair backend configured"))
	}

	if timeout <= 0 {
		timeout = s.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.logger.Info("attempting document repair", "issues", len(issues))

	sent := text
	if s.scrubber != nil {
		sent = s.scrubber.Scrub(text)
	}
	reply, err := s.repairer.Generate(ctx, ports.GenerationRequest{
		Prompt:           repairPrompt(sent, issues),
		SystemDirectives: RepairSystemDirective,
		MaxTokens:        s.maxTokens,
	})
	if err != nil {
		return nil, apperrors.NewUnrepairableDocument(issues, issues, err)
	}

	repaired := StripCodeFences(reply)
	remaining := s.detector.Detect(repaired)
	if len(remaining) > 0 {
		s.logger.Warn("repair left issues unresolved", "remaining", len(remaining))
		return nil, apperrors.NewUnrepairableDocument(issues, remaining, nil)
	}

	s.logger.Info("document repaired", "fixed", len(issues))
	return &Validated{Text: repaired, Issues: issues, Redacted: sent != text}, nil
}

func repairPrompt(text string, issues []entities.Issue) string {
	var sb strings.Builder
	sb.WriteString("Fix the following APML content.\n\nISSUES:\n")
	for _, i := range issues {
		sb.WriteString("- ")
		sb.WriteString(i.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("\nAPML:\n")
	sb.WriteString(text)
	return sb.String()
}

// StripCodeFences removes a surrounding Markdown code fence from a model reply.
func StripCodeFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	lines = lines[1:] // opening fence, possibly with a language tag
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
