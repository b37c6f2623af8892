package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductHandler handles catalog HTTP requests.
type ProductHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /api/admin/product requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to create product", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, "failed to list products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/product/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to delete product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "product deleted",
		"product": deleted,
	})
}
