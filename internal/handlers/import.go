// internal/handlers/import.go
package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// Importer previews uploaded files and confirms reviewed drafts
type Importer interface {
	ParseFile(ctx context.Context, fileName string, r io.Reader) (*domain.ImportPreview, error)
	Confirm(ctx context.Context, drafts []domain.DraftItem) (*domain.ImportResult, error)
}

// ImportHandler handles import operations
type ImportHandler struct {
	responder
	importer    Importer
	jobs        ports.ImportJobStore
	queue       ports.ImportJobQueue
	invalidator CacheInvalidator
	maxFileSize int64
	uploadDir   string
}

// NewImportHandler creates a new import handler. jobs and queue may be nil,
// in which case the asynchronous endpoints answer 503.
func NewImportHandler(
	importer Importer,
	jobs ports.ImportJobStore,
	queue ports.ImportJobQueue,
	invalidator CacheInvalidator,
	logger *slog.Logger,
	maxFileSize int64,
	uploadDir string,
) *ImportHandler {
	return &ImportHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "import"))},
		importer:    importer,
		jobs:        jobs,
		queue:       queue,
		invalidator: invalidatorOrNoop(invalidator),
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
	}
}

// ConfirmRequest carries the reviewed drafts of a preview
type ConfirmRequest struct {
	Items []domain.DraftItem `json:"items"`
}

// Preview handles POST /api/v1/import/preview
func (h *ImportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, header, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	preview, err := h.importer.ParseFile(ctx, header.Filename, file)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to parse import file")
		return
	}

	h.respondJSON(w, http.StatusOK, preview)
}

// Confirm handles POST /api/v1/import/confirm
func (h *ImportHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		h.respondError(w, http.StatusBadRequest, "Items is required")
		return
	}

	result, err := h.importer.Confirm(ctx, req.Items)
	if result != nil && result.Created > 0 {
		h.invalidator.InvalidateInventoryCache(ctx)
		h.invalidator.InvalidateSupplierCache(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "import aborted",
			slog.String("error", err.Error()))
		body := map[string]interface{}{"error": "Import aborted: " + err.Error()}
		if result != nil {
			body["result"] = result
		}
		h.respondJSON(w, http.StatusInternalServerError, body)
		return
	}

	h.logger.InfoContext(ctx, "import confirmed",
		slog.Int("created", result.Created),
		slog.Int("errors", len(result.Errors)),
		slog.Int("warnings", len(result.Warnings)))

	h.respondJSON(w, http.StatusOK, result)
}

// CreateJob handles POST /api/v1/import/jobs
func (h *ImportHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.jobs == nil || h.queue == nil {
		h.respondError(w, http.StatusServiceUnavailable, "Background imports are not available")
		return
	}

	file, header, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	jobID := uuid.New().String()
	fileName := filepath.Base(header.Filename)

	tempFile, err := h.saveUpload(jobID, fileName, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save upload",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	now := time.Now().UTC()
	job := &domain.ImportJob{
		ID:        jobID,
		FileName:  fileName,
		Status:    domain.ImportJobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.jobs.SaveJob(ctx, job); err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to create job record",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create import job")
		return
	}

	if err := h.queue.EnqueueImport(ctx, jobID, tempFile, fileName); err != nil {
		os.Remove(tempFile)
		job.Status = domain.ImportJobFailed
		job.Error = "failed to queue import"
		job.UpdatedAt = time.Now().UTC()
		if saveErr := h.jobs.SaveJob(ctx, job); saveErr != nil {
			h.logger.WarnContext(ctx, "failed to mark job failed",
				slog.String("job_id", jobID),
				slog.String("error", saveErr.Error()))
		}
		h.logger.ErrorContext(ctx, "failed to enqueue import",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "import queued",
		slog.String("job_id", jobID),
		slog.String("file_name", fileName))

	h.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"jobId":   jobID,
		"status":  domain.ImportJobQueued,
		"message": "Import has been queued for processing",
	})
}

// GetJob handles GET /api/v1/import/jobs/{jobId}
func (h *ImportHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.jobs == nil {
		h.respondError(w, http.StatusServiceUnavailable, "Background imports are not available")
		return
	}

	job, err := h.jobs.GetJob(ctx, r.PathValue("jobId"))
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to retrieve import job")
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}

func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return nil, nil, false
	}
	if header.Size > h.maxFileSize {
		file.Close()
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds %d MB", h.maxFileSize>>20))
		return nil, nil, false
	}
	return file, header, true
}

func (h *ImportHandler) saveUpload(jobID, fileName string, src io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", jobID, fileName))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}
