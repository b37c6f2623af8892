package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	notificationHandler *handler.NotificationHandler,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	user := middleware.RequireUser(jwtSecret, logger)
	admin := middleware.RequireAdmin(jwtSecret, logger)
	optional := middleware.OptionalUser(jwtSecret, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.HandleFunc("POST /api/user/register", authHandler.RegisterUser)
	mux.HandleFunc("POST /api/user/login", authHandler.LoginUser)
	mux.HandleFunc("POST /api/admin/register", authHandler.RegisterAdmin)
	mux.HandleFunc("POST /api/admin/login", authHandler.LoginAdmin)
	mux.HandleFunc("GET /api/admin/check", authHandler.CheckAdmin)

	// Catalog: reads are public, writes are admin-only
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.Handle("POST /api/admin/product", admin(http.HandlerFunc(productHandler.Create)))
	mux.Handle("DELETE /api/admin/product/{id}", admin(http.HandlerFunc(productHandler.Delete)))

	// Cart: members only
	mux.Handle("POST /api/cart/add", user(http.HandlerFunc(cartHandler.Add)))
	mux.Handle("GET /api/cart", user(http.HandlerFunc(cartHandler.Get)))
	mux.Handle("DELETE /api/cart/remove", user(http.HandlerFunc(cartHandler.Remove)))
	mux.Handle("PUT /api/cart/update", user(http.HandlerFunc(cartHandler.Update)))

	// Orders: checkout is open to guests, auth attaches if present
	mux.Handle("POST /api/order/checkout", optional(http.HandlerFunc(orderHandler.Checkout)))
	mux.Handle("GET /api/order/my", user(http.HandlerFunc(orderHandler.ListMine)))
	mux.Handle("GET /api/order/admin/recent-orders", admin(http.HandlerFunc(orderHandler.Recent)))
	mux.Handle("GET /api/order/admin/orders", admin(http.HandlerFunc(orderHandler.ListAll)))
	mux.Handle("PATCH /api/order/admin/order/{id}", admin(http.HandlerFunc(orderHandler.UpdateStatus)))
	mux.Handle("DELETE /api/order/admin/order/{id}", admin(http.HandlerFunc(orderHandler.Delete)))

	// Notifications: admin-only
	mux.Handle("GET /api/notifications", admin(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("GET /api/notifications/admin", admin(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("PUT /api/notifications/{id}/read", admin(http.HandlerFunc(notificationHandler.MarkRead)))

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Metrics(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
