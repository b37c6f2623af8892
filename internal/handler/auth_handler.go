package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login for users and admins.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// authResponse is the success envelope for register and login.
type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

// RegisterUser handles POST /api/user/register requests.
func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, model.RoleCustomer)
}

// RegisterAdmin handles POST /api/admin/register requests.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, model.RoleAdmin)
}

// LoginUser handles POST /api/user/login requests.
func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, model.RoleCustomer)
}

// LoginAdmin handles POST /api/admin/login requests.
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, model.RoleAdmin)
}

// CheckAdmin handles GET /api/admin/check requests. It reports whether any
// admin account exists so a fresh deployment can offer first-admin setup.
func (h *AuthHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	exists, err := h.service.AdminExists(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to check admin accounts", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role string) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, token, err := h.service.Register(r.Context(), req, role)
	if err != nil {
		writeServiceError(w, err, "failed to register", h.logger)
		return
	}

	setTokenCookie(w, token)
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "registration successful",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role string) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, token, err := h.service.Login(r.Context(), creds, role)
	if err != nil {
		writeServiceError(w, err, "failed to log in", h.logger)
		return
	}

	setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, authResponse{
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

// setTokenCookie mirrors the token into a cookie for browser clients. API
// clients use the Authorization header and can ignore it.
func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
