package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Order totals serialize as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema migrations
	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)

	// Initialize the order event publisher; the broker is optional and the
	// server starts without it
	var publisher service.OrderEventPublisher
	if cfg.AMQP.Enabled() {
		amqpPublisher, err := events.NewPublisher(cfg.AMQP, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to connect to event broker, continuing without order events")
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	} else {
		logger.Info().Msg("event broker not configured, order events disabled")
	}

	// Initialize services
	jwtExpiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, jwtExpiry, logger)
	catalogService := service.NewCatalogService(productRepo, logger)
	cartService := service.NewCartService(userRepo, productRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo, notificationService, publisher, logger)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)

	// Initialize router
	mux := router.New(authHandler, productHandler, cartHandler, orderHandler, notificationHandler, cfg.JWT.Secret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
