package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already on the wire; an encode failure here is
	// unrecoverable.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a service-layer error to an HTTP response. Domain
// errors surface their own message; everything else becomes an opaque 500
// under the given fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForKind(domainErr.Kind), domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, fallback, logger)
}

func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindAuth:
		return http.StatusUnauthorized
	case model.KindConflict:
		return http.StatusConflict
	case model.KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
