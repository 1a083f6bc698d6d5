// internal/handlers/respond.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// maxJSONBody caps request bodies decoded as JSON
const maxJSONBody = 1 << 20

// responder holds the JSON response helpers shared by every handler
type responder struct {
	logger *slog.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors onto status codes. Anything
// unrecognized is logged and reported as a 500 with the fallback message.
func (h responder) respondServiceError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		h.respondError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateID):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(ctx, fallback,
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	body := io.LimitReader(r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// CacheInvalidator drops cached views after a mutation
type CacheInvalidator interface {
	InvalidateInventoryCache(ctx context.Context, ids ...string)
	InvalidateSupplierCache(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateInventoryCache(context.Context, ...string) {}
func (noopInvalidator) InvalidateSupplierCache(context.Context)              {}

func invalidatorOrNoop(c CacheInvalidator) CacheInvalidator {
	if c == nil {
		return noopInvalidator{}
	}
	return c
}
