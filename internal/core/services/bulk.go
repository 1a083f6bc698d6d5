// internal/core/services/bulk.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

const bulkLookupConcurrency = 8

// BulkCoordinator applies one mutation across many items. Missing items are
// reported in the result; found items are committed in a single batch.
type BulkCoordinator struct {
	store  ports.DocumentStore
	now    func() time.Time
	logger *slog.Logger
}

var _ ports.BulkCoordinator = (*BulkCoordinator)(nil)

// NewBulkCoordinator creates a new bulk coordinator
func NewBulkCoordinator(store ports.DocumentStore, logger *slog.Logger) *BulkCoordinator {
	return &BulkCoordinator{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("service", "bulk")),
	}
}

// BulkApply checks each id, stages a write for every item found and commits
// them atomically. Repeated ids are applied once. A failed commit is
// returned as an error and nothing is written.
func (c *BulkCoordinator) BulkApply(ctx context.Context, ids []string, op domain.BulkOperation) (*domain.BulkOperationResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	ids = distinct(ids)

	found, err := c.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &domain.BulkOperationResult{}
	ops := make([]ports.WriteOp, 0, len(ids))
	now := c.now()
	for i, id := range ids {
		item := found[i]
		if item == nil {
			result.FailedCount++
			result.Errors = append(result.Errors, domain.ItemNotFoundMessage(id))
			continue
		}
		ops = append(ops, stageBulkWrite(item, op, now))
	}

	if len(ops) > 0 {
		if err := c.store.BatchWrite(ctx, ops); err != nil {
			return nil, fmt.Errorf("failed to commit bulk %s: %w", op.Action, err)
		}
	}
	result.SuccessCount = len(ops)
	result.Success = result.FailedCount == 0

	c.logger.InfoContext(ctx, "bulk operation applied",
		slog.String("operation", string(op.Action)),
		slog.Int("requested", len(ids)),
		slog.Int("succeeded", result.SuccessCount),
		slog.Int("failed", result.FailedCount))

	return result, nil
}

// distinct drops repeated ids, keeping first occurrences in order
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// lookup point-reads every id concurrently. The returned slice is aligned
// with ids; missing items are nil.
func (c *BulkCoordinator) lookup(ctx context.Context, ids []string) ([]*domain.InventoryItem, error) {
	found := make([]*domain.InventoryItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkLookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			item, err := loadItem(gctx, c.store, id)
			if err != nil {
				return err
			}
			found[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

// stageBulkWrite builds the write for one found item. Bulk update re-derives
// status but leaves reorderRequired as merged.
func stageBulkWrite(item *domain.InventoryItem, op domain.BulkOperation, now time.Time) ports.WriteOp {
	w := ports.WriteOp{Collection: ports.CollectionInventory, ID: item.ID}
	switch op.Action {
	case domain.BulkArchive:
		p := archivePatch(now)
		w.Kind, w.Fields = ports.WriteUpdate, p.Set
	case domain.BulkRestore:
		p := restorePatch()
		w.Kind, w.Fields, w.Unset = ports.WriteUpdate, p.Set, p.Unset
	case domain.BulkDelete, domain.BulkPermanentlyDelete:
		w.Kind = ports.WriteDelete
	case domain.BulkUpdate:
		merged := item.Clone()
		merged.Apply(op.Fields)
		merged.Normalize()
		merged.RefreshStatus()
		merged.UpdatedAt = now
		w.Kind, w.Fields = ports.WriteSet, merged.Fields()
	}
	return w
}
