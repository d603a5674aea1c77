package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nchoi/atelier-backend/config"
	"github.com/nchoi/atelier-backend/internal/app/controller"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/service"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/internal/middleware"
	"github.com/nchoi/atelier-backend/internal/router"
	"github.com/nchoi/atelier-backend/internal/scheduler"
	"github.com/nchoi/atelier-backend/internal/websocket"
	"github.com/nchoi/atelier-backend/pkg/kv"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting ATELIER Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"store":       cfg.Store.Backend,
	})

	// Initialize the key-value store that holds session state
	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize store", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", err)
		}
	}()

	// Initialize repositories
	catalogRepo, err := newCatalogRepository(cfg)
	if err != nil {
		logger.Fatal("Failed to load catalog", err)
	}
	userRepo, err := repository.NewUserRepository(store)
	if err != nil {
		logger.Fatal("Failed to load user registry", err)
	}

	// Session state manager
	sessions := state.NewManager(store)

	// Identity provider
	var provider service.IdentityProvider
	if cfg.OAuth.GoogleClientID != "" {
		provider = service.NewGoogleProvider(cfg.OAuth.GoogleClientID)
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, provider sign-in disabled", nil)
		provider = service.NewStubProvider()
	}

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		provider,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalogService := service.NewCatalogService(catalogRepo, sessions)
	cartService := service.NewCartService(sessions, catalogRepo)
	wishlistService := service.NewWishlistService(sessions, catalogRepo)
	compareService := service.NewCompareService(sessions, catalogRepo)
	reviewService := service.NewReviewService(sessions, catalogRepo)
	checkoutService := service.NewCheckoutService(sessions, cfg.Checkout)
	orderService := service.NewOrderService(sessions)
	assistantService := service.NewAssistantService()

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	compareController := controller.NewCompareController(compareService)
	reviewController := controller.NewReviewController(reviewService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	orderController := controller.NewOrderController(orderService)
	activityController := controller.NewActivityController(catalogService)
	assistantController := controller.NewAssistantController(assistantService)
	assistantHandler := websocket.NewAssistantHandler(assistantService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Order status progression
	statusScheduler := scheduler.NewOrderStatusScheduler(orderService)
	if err := statusScheduler.Start(); err != nil {
		logger.Fatal("Failed to start order status scheduler", err)
	}
	defer statusScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		wishlistController,
		compareController,
		reviewController,
		checkoutController,
		orderController,
		activityController,
		assistantController,
		assistantHandler,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

func newStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		return kv.NewRedisStore(kv.RedisOptions{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return kv.NewFileStore(cfg.Store.DataDir)
	}
}

func newCatalogRepository(cfg *config.Config) (repository.CatalogRepository, error) {
	if cfg.Catalog.File != "" {
		return repository.NewCatalogRepositoryFromFile(cfg.Catalog.File)
	}
	return repository.NewCatalogRepository(nil), nil
}
