// internal/core/ports/importing.go
package ports

import (
	"context"
	"io"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// TabularParser turns an uploaded spreadsheet or CSV into rows keyed by
// header. The returned offset is the number of rows before the first data row.
type TabularParser interface {
	Parse(fileName string, r io.Reader) (rows []domain.RawRow, headerOffset int, err error)
}

// ImportJobStore persists asynchronous import job state
type ImportJobStore interface {
	SaveJob(ctx context.Context, job *domain.ImportJob) error
	GetJob(ctx context.Context, id string) (*domain.ImportJob, error)
}

// ImportJobQueue hands an uploaded file to the background worker
type ImportJobQueue interface {
	EnqueueImport(ctx context.Context, jobID, filePath, fileName string) error
}
