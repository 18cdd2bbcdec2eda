package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/storefrontlab/storefront-backend/config"
	"github.com/storefrontlab/storefront-backend/internal/app/controller"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
	"github.com/storefrontlab/storefront-backend/internal/router"
	"github.com/storefrontlab/storefront-backend/internal/scheduler"
	"github.com/storefrontlab/storefront-backend/internal/storage"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"github.com/storefrontlab/storefront-backend/pkg/redis"
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

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it order notifications are dropped with
	// a log line, everything else works.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, order notifications disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close redis connection", err)
			}
		}()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	customerRepo := repository.NewCustomerRepository(db.GetDB())
	collectionRepo := repository.NewCollectionRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		customerRepo,
		db.GetDB(),
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	collectionService := service.NewCollectionService(collectionRepo)
	productService := service.NewProductService(productRepo, collectionRepo, tagRepo, db.GetDB())
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	tagService := service.NewTagService(tagRepo)
	cartService := service.NewCartService(cartRepo, productRepo, db.GetDB())
	notificationService := service.NewNotificationService(redis.GetClient())
	orderService := service.NewOrderService(orderRepo, cartRepo, customerRepo, notificationService, db.GetDB())
	customerService := service.NewCustomerService(customerRepo, orderRepo)
	adminService := service.NewAdminService(collectionService, customerRepo, orderRepo, productRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	collectionController := controller.NewCollectionController(collectionService)
	productController := controller.NewProductController(productService)
	productImageController := controller.NewProductImageController(productService)
	reviewController := controller.NewReviewController(reviewService)
	tagController := controller.NewTagController(tagService, productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	customerController := controller.NewCustomerController(customerService)
	adminController := controller.NewAdminController(adminService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the stale-cart purge job
	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo, cfg.Cart.MaxAge)
	if err := cartCleanup.Start(); err != nil {
		logger.Fatal("Failed to start cart cleanup scheduler", err)
	}
	defer cartCleanup.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		collectionController,
		productController,
		productImageController,
		reviewController,
		tagController,
		cartController,
		orderController,
		customerController,
		adminController,
		uploadController,
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
