package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NotificationHandler handles admin notification HTTP requests.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/notifications and GET /api/notifications/admin
// requests.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.service.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err, "failed to list notifications", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

// MarkRead handles PUT /api/notifications/{id}/read requests.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification ID format", h.logger)
		return
	}

	notification, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to mark notification read", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notification": notification})
}
