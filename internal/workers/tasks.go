// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

const (
	TypeInventoryImport  = "inventory:import"
	TypeLowStockAlert    = "inventory:low_stock_alert"
	TypeDashboardRefresh = "dashboard:refresh"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ImportPayload is the payload of TypeInventoryImport
type ImportPayload struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}

// LowStockPayload is the payload of TypeLowStockAlert
type LowStockPayload struct {
	ItemID       string             `json:"item_id"`
	Name         string             `json:"name"`
	Quantity     int                `json:"quantity"`
	ReorderLevel *int               `json:"reorder_level,omitempty"`
	Status       domain.StockStatus `json:"status"`
	Location     string             `json:"location,omitempty"`
	SupplierID   string             `json:"supplier_id,omitempty"`
}

// NewImportTask builds an import task
func NewImportTask(payload ImportPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import payload: %w", err)
	}
	return asynq.NewTask(TypeInventoryImport, b), nil
}

// NewLowStockTask builds a low-stock alert task for item
func NewLowStockTask(item *domain.InventoryItem) (*asynq.Task, error) {
	b, err := json.Marshal(LowStockPayload{
		ItemID:       item.ID,
		Name:         item.Name,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
		Status:       item.Status,
		Location:     item.Location,
		SupplierID:   item.SupplierID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert payload: %w", err)
	}
	return asynq.NewTask(TypeLowStockAlert, b), nil
}

// TaskClient is the subset of *asynq.Client used to enqueue work
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer hands imports and low-stock alerts to the worker
type Enqueuer struct {
	client TaskClient
}

var (
	_ ports.ImportJobQueue = (*Enqueuer)(nil)
	_ ports.StockAlerter   = (*Enqueuer)(nil)
)

// NewEnqueuer creates an enqueuer on top of an asynq client
func NewEnqueuer(client TaskClient) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueImport queues an uploaded file for import. The job id doubles as
// the task id so a job is never queued twice.
func (e *Enqueuer) EnqueueImport(ctx context.Context, jobID, filePath, fileName string) error {
	task, err := NewImportTask(ImportPayload{JobID: jobID, FilePath: filePath, FileName: fileName})
	if err != nil {
		return err
	}

	if _, err := e.client.EnqueueContext(ctx, task,
		asynq.TaskID(jobID),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(24*time.Hour),
	); err != nil {
		return fmt.Errorf("failed to enqueue import: %w", err)
	}
	return nil
}

// NotifyLowStock queues an alert for item
func (e *Enqueuer) NotifyLowStock(ctx context.Context, item *domain.InventoryItem) error {
	task, err := NewLowStockTask(item)
	if err != nil {
		return err
	}

	if _, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(5),
	); err != nil {
		return fmt.Errorf("failed to enqueue low stock alert: %w", err)
	}
	return nil
}
