package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests. All routes require a member
// identity; guests have no server-side cart.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Add handles POST /api/cart/add requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var req model.CartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ProductID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, "failed to add item to cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

// Get handles GET /api/cart requests. Product references are resolved to
// full catalog records at read time.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

// Remove handles DELETE /api/cart/remove requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var req model.CartRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ProductID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), userID, req.ProductID)
	if err != nil {
		writeServiceError(w, err, "failed to remove item from cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

// Update handles PUT /api/cart/update requests.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var req model.CartUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ProductID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required", h.logger)
		return
	}

	cart, err := h.service.SetItemQuantity(r.Context(), userID, req.ProductID, *req.Quantity)
	if err != nil {
		writeServiceError(w, err, "failed to update cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}
