package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tokoberkah/kasir-api/internal/application/service"
	"github.com/tokoberkah/kasir-api/internal/config"
	"github.com/tokoberkah/kasir-api/internal/infrastructure/cache"
	"github.com/tokoberkah/kasir-api/internal/infrastructure/database"
	"github.com/tokoberkah/kasir-api/internal/infrastructure/repository"
	"github.com/tokoberkah/kasir-api/internal/presentation/http/handler"
	"github.com/tokoberkah/kasir-api/internal/presentation/http/routes"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Expired idempotency keys are dead weight; sweep them hourly
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warn("failed to sweep expired idempotency keys", zap.Error(err))
			}
		}
	}()

	// Report views are cached until the next ledger write
	reportCache := cache.NewReportCache()

	// Initialize services
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, reportCache, logger)
	receivableService := service.NewReceivableService(saleRepo, paymentRepo, reportCache, logger)
	reportService := service.NewReportService(reportRepo, reportCache)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Sale:       handler.NewSaleHandler(saleService),
		Receivable: handler.NewReceivableHandler(receivableService),
		Report:     handler.NewReportHandler(reportService),
		Product:    handler.NewProductHandler(productService),
		Customer:   handler.NewCustomerHandler(customerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
