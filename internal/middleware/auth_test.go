package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uuid.UUID, role string, expiry time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func identityProbe(gotID *uuid.UUID, gotRole *string, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, ok := GetUserID(r.Context()); ok {
			*gotID = id
		}
		if role, ok := GetUserRole(r.Context()); ok {
			*gotRole = role
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUser(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	t.Run("valid bearer token", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := RequireUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, model.RoleCustomer, time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, model.RoleCustomer, gotRole)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := RequireUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, userID, model.RoleCustomer, time.Hour)})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
	})

	t.Run("missing token", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := RequireUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("expired token", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := RequireUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, model.RoleCustomer, -time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := RequireUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		claims := jwt.MapClaims{"sub": userID.String(), "role": model.RoleCustomer, "exp": time.Now().Add(time.Hour).Unix()}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}

func TestRequireAdmin(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("admin passes", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := RequireAdmin(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/order/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), model.RoleAdmin, time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, model.RoleAdmin, gotRole)
	})

	t.Run("customer rejected", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := RequireAdmin(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/order/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), model.RoleCustomer, time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
	})
}

func TestOptionalUser(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	t.Run("valid token attaches identity", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := OptionalUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, model.RoleCustomer, time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
	})

	t.Run("no token passes through anonymously", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := OptionalUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, uuid.Nil, gotID)
	})

	t.Run("invalid token degrades to anonymous", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole string
		var called bool

		handler := OptionalUser(testSecret, logger)(identityProbe(&gotID, &gotRole, &called))

		req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, model.RoleCustomer, -time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, uuid.Nil, gotID)
	})
}
