package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tokoberkah/kasir-api/internal/config"
	domainRepo "github.com/tokoberkah/kasir-api/internal/domain/repository"
	"github.com/tokoberkah/kasir-api/internal/presentation/http/handler"
	"github.com/tokoberkah/kasir-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale       *handler.SaleHandler
	Receivable *handler.ReceivableHandler
	Report     *handler.ReportHandler
	Product    *handler.ProductHandler
	Customer   *handler.CustomerHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		// Duplicate POSTs on sales and payments double-count, so both accept
		// an optional Idempotency-Key
		idem := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		sales := v1.Group("/sales")
		{
			sales.GET("", h.Sale.List)
			sales.POST("", idem, h.Sale.Create)
			sales.GET("/outstanding", h.Receivable.ListOutstanding)
			sales.GET("/:id", h.Sale.Get)
			sales.GET("/:id/payments", h.Receivable.ListPayments)
			sales.POST("/:id/payments", idem, h.Receivable.Pay)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/daily", h.Report.DailySummary)
			reports.GET("/filtered", h.Report.Filtered)
		}

		products := v1.Group("/products")
		{
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
		}
	}

	return router
}
