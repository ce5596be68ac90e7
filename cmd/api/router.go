package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/infrastructure/metrics"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		metrics.Middleware(),
	)

	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBookRoutes(v1, c)
		setupPaymentRoutes(v1, c)
		setupPatronRoutes(v1, c)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.POST("", c.BookHandler.AddBook)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/export", c.BookHandler.ExportCatalog)
		books.GET("/:id", c.BookHandler.GetBook)

		// circulation
		books.POST("/:id/borrow", c.CirculationHandler.BorrowBook)
		books.POST("/:id/return", c.CirculationHandler.ReturnBook)
		books.GET("/:id/late-fee", c.CirculationHandler.GetLateFee)
	}
}

// ========================================
// PAYMENT ROUTES
// ========================================
func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payments := v1.Group("/payments")
	{
		payments.POST("/late-fees", c.PaymentHandler.PayLateFees)
		payments.POST("/refunds", c.PaymentHandler.RefundLateFee)
	}
}

// ========================================
// PATRON ROUTES
// ========================================
func setupPatronRoutes(v1 *gin.RouterGroup, c *container.Container) {
	patrons := v1.Group("/patrons")
	{
		patrons.GET("/:patron_id/status", c.CirculationHandler.GetPatronStatus)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check storage
		storageStatus := "ok"
		if err := appCtx.Store.Ping(ctx); err != nil {
			storageStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		// Check locks
		lockStatus := "ok"
		if err := appCtx.Locker.HealthCheck(ctx); err != nil {
			lockStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		health["services"] = gin.H{
			appCtx.Config.Storage.Driver: storageStatus,
			"lock":                       lockStatus,
		}

		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		c.JSON(code, health)
	}
}
