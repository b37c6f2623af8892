package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and order administration HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/order/checkout requests. The route carries
// optional auth: an authenticated caller may order from their cart, an
// anonymous caller must send explicit items.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	// An absent body is a plain cart checkout, not a malformed request.
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Checkout(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to place order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "order placed successfully",
		"order":   order,
	})
}

// ListMine handles GET /api/order/my requests.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	orders, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to list orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// ListAll handles GET /api/order/admin/orders requests.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Recent handles GET /api/order/admin/recent-orders requests. Orders are
// flattened to one record per line item for the dashboard feed.
func (h *OrderHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.service.RecentItems(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err, "failed to list recent orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// UpdateStatus handles PATCH /api/order/admin/order/{id} requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err, "failed to update order status", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "order status updated",
		"order":   order,
	})
}

// Delete handles DELETE /api/order/admin/order/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to delete order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "order deleted",
		"order":   order,
	})
}
