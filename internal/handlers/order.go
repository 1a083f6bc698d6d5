// internal/handlers/order.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// OrderDesk checks out carts and reads sales orders
type OrderDesk interface {
	Checkout(ctx context.Context, input domain.CheckoutInput) (*domain.SalesOrder, error)
	GetOrder(ctx context.Context, id string) (*domain.SalesOrder, error)
	ListOrders(ctx context.Context) ([]*domain.SalesOrder, error)
}

// OrderHandler handles sales order endpoints
type OrderHandler struct {
	responder
	orders      OrderDesk
	invalidator CacheInvalidator
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderDesk, invalidator CacheInvalidator, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "order"))},
		orders:      orders,
		invalidator: invalidatorOrNoop(invalidator),
	}
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orders.ListOrders(ctx)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to list orders")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := h.orders.GetOrder(ctx, r.PathValue("id"))
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to retrieve order")
		return
	}

	h.respondJSON(w, http.StatusOK, order)
}

// Checkout handles POST /api/v1/orders
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.CheckoutInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orders.Checkout(ctx, input)
	if err != nil {
		h.respondServiceError(ctx, w, err, "Failed to complete checkout")
		return
	}

	ids := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		ids = append(ids, line.ItemID)
	}
	h.invalidator.InvalidateInventoryCache(ctx, ids...)

	h.logger.InfoContext(ctx, "checkout completed",
		slog.String("order_id", order.ID),
		slog.String("total", order.Total.StringFixed(2)))

	h.respondJSON(w, http.StatusCreated, order)
}
