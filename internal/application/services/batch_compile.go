package services

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"golang.org/x/sync/errgroup"
)

// BatchCompileUseCase compiles many documents concurrently.
// Results come back in input order and match sequential compilation.
type BatchCompileUseCase struct {
	compile *CompileDocumentUseCase
	logger  *slog.Logger
}

// NewBatchCompileUseCase creates a batch use case over compile.
func NewBatchCompileUseCase(compile *CompileDocumentUseCase, logger *slog.Logger) *BatchCompileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchCompileUseCase{compile: compile, logger: logger}
}

// Execute compiles every request. A failed document does not stop the others.
func (uc *BatchCompileUseCase) Execute(ctx context.Context, req dto.BatchCompileRequest) []dto.BatchCompileResult {
	results := make([]dto.BatchCompileResult, len(req.Requests))

	limit := req.Parallelism
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, r := range req.Requests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = dto.BatchCompileResult{Source: r.Source, Err: err}
				return nil
			}
			resp, err := uc.compile.Execute(ctx, r)
			results[i] = dto.BatchCompileResult{Source: r.Source, Response: resp, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	uc.logger.Info("batch compile complete", "documents", len(results), "failed", failed, "parallelism", limit)
	return results
}
