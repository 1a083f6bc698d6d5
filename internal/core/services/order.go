// internal/core/services/order.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// OrderService checks out carts into sales orders
type OrderService struct {
	store    ports.DocumentStore
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store ports.DocumentStore, validate *validator.Validate, logger *slog.Logger) *OrderService {
	if validate == nil {
		validate = NewValidator()
	}
	return &OrderService{
		store:    store,
		validate: validate,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With(slog.String("service", "order")),
	}
}

// Checkout validates every cart line against current stock and then writes
// the order together with the stock changes in one batch. Any invalid line
// aborts the checkout before anything is written.
func (s *OrderService) Checkout(ctx context.Context, input domain.CheckoutInput) (*domain.SalesOrder, error) {
	if err := ValidateStruct(s.validate, input); err != nil {
		return nil, err
	}

	// Repeated lines for the same item are combined.
	requested := make(map[string]int)
	var order []string
	for _, line := range input.Lines {
		if _, seen := requested[line.ItemID]; !seen {
			order = append(order, line.ItemID)
		}
		requested[line.ItemID] += line.Quantity
	}

	docs, err := s.store.GetAll(ctx, ports.CollectionSalesOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales orders: %w", err)
	}

	now := s.now()
	sale := &domain.SalesOrder{
		ID:        domain.NextOrderID(documentIDs(docs)),
		Customer:  input.Customer,
		Status:    domain.OrderStatusCompleted,
		CreatedAt: now,
	}

	ops := make([]ports.WriteOp, 0, len(order)+1)
	for _, id := range order {
		qty := requested[id]
		item, err := loadItem(ctx, s.store, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, notFound("inventory item", id)
		}
		if item.Archived {
			return nil, domain.NewValidationError("lines", "Item %s is archived", id)
		}
		if item.Quantity < qty {
			return nil, domain.NewValidationError("lines",
				"Insufficient stock for %s: requested %d, available %d", id, qty, item.Quantity)
		}

		sale.AddLine(item, qty)

		updated := item.Clone()
		updated.Quantity -= qty
		updated.QuantitySold += qty
		updated.EnforceReorderLevel()
		updated.RefreshStatus()
		updated.UpdatedAt = now
		ops = append(ops, ports.WriteOp{
			Kind:       ports.WriteUpdate,
			Collection: ports.CollectionInventory,
			ID:         id,
			Fields: ports.Document{
				"quantity":        updated.Quantity,
				"quantitySold":    updated.QuantitySold,
				"reorderRequired": updated.ReorderRequired,
				"status":          string(updated.Status),
				"updatedAt":       now,
			},
		})
	}

	ops = append(ops, ports.WriteOp{
		Kind:       ports.WriteSet,
		Collection: ports.CollectionSalesOrders,
		ID:         sale.ID,
		Fields:     sale.Fields(),
	})
	if err := s.store.BatchWrite(ctx, ops); err != nil {
		return nil, fmt.Errorf("failed to commit sales order: %w", err)
	}

	s.logger.InfoContext(ctx, "sales order completed",
		slog.String("id", sale.ID),
		slog.Int("lines", len(sale.Lines)),
		slog.String("total", sale.Total.StringFixed(2)))
	return sale, nil
}

// GetOrder retrieves a sales order by id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.SalesOrder, error) {
	doc, err := s.store.GetOne(ctx, ports.CollectionSalesOrders, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales order %s: %w", id, err)
	}
	if doc == nil {
		return nil, notFound("sales order", id)
	}
	return domain.DecodeSalesOrder(doc)
}

// ListOrders returns all sales orders, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.SalesOrder, error) {
	docs, err := s.store.GetAll(ctx, ports.CollectionSalesOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales orders: %w", err)
	}
	orders := make([]*domain.SalesOrder, 0, len(docs))
	for _, doc := range docs {
		o, err := domain.DecodeSalesOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
