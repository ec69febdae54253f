package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/api/handlers"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/cache"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/config"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/gateway"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/health"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/metrics"
	repository "github.com/aaravmahajanofficial/hotel-booking-platform/internal/repositories"
	service "github.com/aaravmahajanofficial/hotel-booking-platform/internal/services"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/store"
	"github.com/aaravmahajanofficial/hotel-booking-platform/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, historyRepo, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	backendClient := gateway.NewClient(cfg.BookingBackend.BaseURL)

	var invoiceAPI gateway.Client
	if cfg.InvoiceService.BaseURL != "" {
		invoiceAPI = gateway.NewClient(cfg.InvoiceService.BaseURL)
	}

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	cartStore := store.NewRedisCartStore(redisClient)
	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	invoiceDispatcher := service.NewInvoiceDispatcher(invoiceAPI, emailService)
	defer invoiceDispatcher.Close()

	cartService := service.NewCartService(cartStore)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(cartStore, backendClient, invoiceDispatcher, historyRepo)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	catalogService := service.NewCatalogService(backendClient, catalogCache, &cfg.Cache)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	historyService := service.NewBookingHistoryService(historyRepo)
	historyHandler := handlers.NewBookingHistoryHandler(historyService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error initializing health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/hotels", catalogHandler.ListHotels())
	routerMux.HandleFunc("GET /api/v1/hotels/{id}", catalogHandler.GetHotel())
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddLine()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{index}", authMiddleware.Authenticate(cartHandler.RemoveLine()))
	routerMux.HandleFunc("DELETE /api/v1/carts", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.StartSession()))
	routerMux.HandleFunc("GET /api/v1/checkout/{id}", authMiddleware.Authenticate(checkoutHandler.GetSession()))
	routerMux.HandleFunc("PUT /api/v1/checkout/{id}/guest-details", authMiddleware.Authenticate(checkoutHandler.SubmitGuestDetails()))
	routerMux.HandleFunc("POST /api/v1/checkout/{id}/payment", authMiddleware.Authenticate(checkoutHandler.SubmitPayment()))
	routerMux.HandleFunc("DELETE /api/v1/checkout/{id}", authMiddleware.Authenticate(checkoutHandler.AbandonSession()))
	routerMux.HandleFunc("GET /api/v1/bookings", authMiddleware.Authenticate(historyHandler.ListBookings()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
