package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/api/handlers"
	"github.com/fwpboutique/crystalshop/internal/api/middleware"
	"github.com/fwpboutique/crystalshop/internal/config"
	"github.com/fwpboutique/crystalshop/internal/repository"
	"github.com/fwpboutique/crystalshop/internal/service"
)

// Dependencies are the collaborators the HTTP layer needs
type Dependencies struct {
	Repos    *repository.Repositories
	Orders   *service.OrderService
	Analyses *service.AnalysisService
	Sheets   handlers.SheetPinger
	Gatherer prometheus.Gatherer
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Dependencies, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.RegisterValidators(); err != nil {
		logger.Error("Failed to register binding validators", zap.Error(err))
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.POST("/checkout/summary", handlers.HandleSummary(deps.Orders, logger))
		v1.POST("/checkout/validate", handlers.HandleValidate(deps.Orders, logger))
		v1.POST("/coupons/apply", handlers.HandleApplyCoupon(deps.Orders))

		v1.POST("/orders", handlers.HandleSubmitOrder(deps.Orders, logger))
		v1.GET("/orders/:id/receipt", handlers.HandleGetReceipt(deps.Orders, logger))

		v1.POST("/analysis", handlers.HandleAnalyze(deps.Analyses, logger))

		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminMiddleware(cfg.Admin.SecretHash, logger))
		{
			adminRoutes.GET("/records", handlers.HandleListRecords(deps.Repos, logger))
			adminRoutes.GET("/orders", handlers.HandleLookupOrders(deps.Orders, logger))
			adminRoutes.DELETE("/records/:id", handlers.HandleDeleteRecord(deps.Repos, logger))
			adminRoutes.POST("/sheets/ping", handlers.HandlePingSheets(deps.Sheets, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
