// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"milkledger/internal/domain/auth"
	"milkledger/internal/domain/farm"
	"milkledger/internal/domain/ledger"
	"milkledger/internal/domain/reports"
	"milkledger/internal/domain/stock"
	"milkledger/internal/infrastructure/http/v1/handlers"
	"milkledger/internal/infrastructure/http/v1/middleware"
	"milkledger/internal/infrastructure/storage/postgres"
	"milkledger/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	AuthService    *auth.Service
	LedgerService  *ledger.Service
	FarmService    *farm.Service
	StockService   *stock.Service
	ReportsService *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	contactHandler := handlers.NewContactHandler(cfg.LedgerService)
	recordHandler := handlers.NewRecordHandler(cfg.LedgerService)
	farmHandler := handlers.NewFarmHandler(cfg.FarmService)
	stockHandler := handlers.NewStockHandler(cfg.StockService)
	reportsHandler := handlers.NewReportsHandler(cfg.ReportsService)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))

		// Per-module collections and reports.
		module := protected.Group("/ledger/:module")
		{
			module.POST("/contacts", contactHandler.Create)
			module.GET("/contacts", contactHandler.List)
			module.GET("/overview", reportsHandler.Overview)
			module.GET("/outstanding", reportsHandler.Outstanding)
		}

		// Contact-scoped operations.
		contacts := protected.Group("/contacts/:id")
		{
			contacts.GET("", contactHandler.Get)
			contacts.PATCH("", contactHandler.Update)
			contacts.DELETE("", contactHandler.Delete)

			contacts.PUT("/records", recordHandler.Upsert)
			contacts.GET("/records", recordHandler.List)
			contacts.POST("/payments", recordHandler.CreatePayment)
			contacts.GET("/payments", recordHandler.ListPayments)

			contacts.PUT("/rate", contactHandler.SetRate)
			contacts.PUT("/rate/month", contactHandler.SetMonthRate)
			contacts.PUT("/rate/day", contactHandler.SetDayRate)

			contacts.GET("/summary", contactHandler.Summary)
			contacts.GET("/statement", reportsHandler.Statement)
		}

		protected.DELETE("/records/:id", recordHandler.Delete)
		protected.PATCH("/payments/:id", recordHandler.UpdatePayment)
		protected.DELETE("/payments/:id", recordHandler.DeletePayment)

		protected.GET("/reports/profit", reportsHandler.Profit)

		// Own-production log and stock reconciliation.
		farmGroup := protected.Group("/farm")
		{
			farmGroup.PUT("/records", farmHandler.Upsert)
			farmGroup.GET("/records", farmHandler.List)
			farmGroup.DELETE("/records/:id", farmHandler.Delete)
			farmGroup.PUT("/opening-stock", farmHandler.SetOpeningStock)
		}

		stockGroup := protected.Group("/stock")
		{
			stockGroup.GET("/daily", stockHandler.Daily)
			stockGroup.GET("/month", stockHandler.Month)
		}
	}

	return router
}
