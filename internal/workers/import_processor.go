// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/pkg/logger"
)

// FileImporter runs a complete import of one file
type FileImporter interface {
	ImportFile(ctx context.Context, fileName string, r io.Reader) (*domain.ImportPreview, *domain.ImportResult, error)
}

// ImportProcessor handles TypeInventoryImport tasks
type ImportProcessor struct {
	importer FileImporter
	jobs     ports.ImportJobStore
	logger   *slog.Logger
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(importer FileImporter, jobs ports.ImportJobStore, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		importer: importer,
		jobs:     jobs,
		logger:   logger.With(slog.String("processor", "import")),
	}
}

// ProcessImport imports the uploaded file and records the outcome on the
// job. Imports are not retried once rows may have been written.
func (p *ImportProcessor) ProcessImport(ctx context.Context, t *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	ctx = logger.WithJobID(ctx, payload.JobID)

	p.logger.InfoContext(ctx, "processing import",
		slog.String("file_name", payload.FileName))

	job, err := p.loadJob(ctx, payload)
	if err != nil {
		return err
	}
	job.Status = domain.ImportJobProcessing
	if err := p.save(ctx, job); err != nil {
		return err
	}

	file, err := os.Open(payload.FilePath)
	if err != nil {
		p.fail(ctx, job, "upload is no longer available")
		return fmt.Errorf("failed to open upload: %v: %w", err, asynq.SkipRetry)
	}
	defer func() {
		file.Close()
		if err := os.Remove(payload.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.logger.WarnContext(ctx, "failed to remove upload",
				slog.String("file", payload.FilePath),
				slog.String("error", err.Error()))
		}
	}()

	preview, result, err := p.importer.ImportFile(ctx, payload.FileName, file)
	if preview != nil {
		job.TotalRows = preview.TotalRows
		job.ParseErrors = preview.Errors
	}
	job.Result = result
	if err != nil {
		p.fail(ctx, job, err.Error())
		return fmt.Errorf("import failed: %v: %w", err, asynq.SkipRetry)
	}

	job.Status = domain.ImportJobCompleted
	if err := p.save(ctx, job); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "import completed",
		slog.Int("total_rows", job.TotalRows),
		slog.Int("created", result.Created),
		slog.Int("errors", len(result.Errors)))
	return nil
}

// loadJob returns the recorded job, or a fresh one if the record expired
func (p *ImportProcessor) loadJob(ctx context.Context, payload ImportPayload) (*domain.ImportJob, error) {
	job, err := p.jobs.GetJob(ctx, payload.JobID)
	if err == nil {
		return job, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load import job: %w", err)
	}

	now := time.Now().UTC()
	return &domain.ImportJob{
		ID:        payload.JobID,
		FileName:  payload.FileName,
		CreatedAt: now,
	}, nil
}

func (p *ImportProcessor) save(ctx context.Context, job *domain.ImportJob) error {
	job.UpdatedAt = time.Now().UTC()
	if err := p.jobs.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("failed to save import job: %w", err)
	}
	return nil
}

func (p *ImportProcessor) fail(ctx context.Context, job *domain.ImportJob, reason string) {
	job.Status = domain.ImportJobFailed
	job.Error = reason
	if err := p.save(ctx, job); err != nil {
		p.logger.ErrorContext(ctx, "failed to record import failure",
			slog.String("error", err.Error()))
	}
	p.logger.ErrorContext(ctx, "import failed", slog.String("reason", reason))
}
