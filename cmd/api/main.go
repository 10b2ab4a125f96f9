package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AmaanBilwar/BER-StockChecker/internal/config"
	"github.com/AmaanBilwar/BER-StockChecker/internal/events"
	"github.com/AmaanBilwar/BER-StockChecker/internal/handlers"
	"github.com/AmaanBilwar/BER-StockChecker/internal/repository"
	"github.com/AmaanBilwar/BER-StockChecker/internal/vision"
	"github.com/AmaanBilwar/BER-StockChecker/pkg/logger"
	"github.com/AmaanBilwar/BER-StockChecker/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/AmaanBilwar/BER-StockChecker/docs" // Import docs for Swagger
)

// @title           BER StockChecker API
// @version         1.0
// @description     Inventory-tracking backend: item records with photo-based name extraction.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @schemes   http https
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting StockChecker API",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("🗄️ MongoDB Configuration",
		zap.String("database", cfg.MongoDatabase),
		zap.String("collection", cfg.MongoCollection),
	)

	appLogger.Info("👁️ Vision Backend Configuration",
		zap.String("url", cfg.VisionURL),
		zap.Int("timeout_seconds", cfg.VisionTimeoutSeconds),
	)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())

	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))

	// Request ID middleware (must be early in the chain)
	router.Use(middleware.RequestIDMiddleware(appLogger))

	// Idempotency for write operations, Redis-backed when available
	appLogger.Info("🔧 Initializing request ID store for idempotency...")
	requestIDStore := middleware.NewRequestIDStore(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB, appLogger)
	router.Use(middleware.IdempotencyMiddleware(requestIDStore, appLogger, 5*time.Minute))

	// Error handler middleware
	router.Use(middleware.ErrorHandler(appLogger))

	// Store response middleware (for idempotency)
	router.Use(middleware.StoreResponseMiddleware(requestIDStore, appLogger, 5*time.Minute))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repository
	appLogger.Info("🔧 Connecting to MongoDB...")
	repo, err := repository.NewMongoItemRepository(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize MongoDB repository", zap.Error(err))
	}
	defer repo.Close(context.Background())
	appLogger.Info("✅ Repository initialized successfully")

	// Initialize Kafka event publisher with in-memory fallback
	var eventBus events.EventPublisher
	kafkaPublisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
		eventBus = events.NewEventPublisher()
	} else {
		defer kafkaPublisher.Close()
		eventBus = kafkaPublisher
	}

	// Initialize vision client
	visionClient := vision.NewHTTPClient(cfg, appLogger)

	// Initialize handlers
	appLogger.Info("🔧 Initializing handlers...")
	itemHandler := handlers.NewItemHandler(appLogger, repo, eventBus)
	scanHandler := handlers.NewScanHandler(appLogger, visionClient)
	healthHandler := handlers.NewHealthHandler(appLogger, repo)
	appLogger.Info("✅ Handlers initialized successfully")

	// API routes
	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.GetHealth)

		api.GET("/items", itemHandler.ListItems)
		api.POST("/items", itemHandler.CreateItem)
		api.GET("/items/:id", itemHandler.GetItem)
		api.PUT("/items/:id", itemHandler.UpdateItem)

		api.POST("/scan", scanHandler.ScanItem)
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Starting StockChecker API",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}
