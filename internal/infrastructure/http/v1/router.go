// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"salesledger/internal/domain/audit"
	"salesledger/internal/domain/catalog/customer"
	"salesledger/internal/domain/catalog/product"
	"salesledger/internal/domain/invoice"
	"salesledger/internal/domain/order"
	"salesledger/internal/domain/settings"
	"salesledger/internal/infrastructure/http/v1/handlers"
	"salesledger/internal/infrastructure/http/v1/middleware"
	"salesledger/internal/infrastructure/storage/postgres"
	"salesledger/internal/infrastructure/storage/postgres/catalog_repo"
	"salesledger/internal/infrastructure/storage/postgres/document_repo"
	"salesledger/pkg/logger"
	"salesledger/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager manages database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document number generation
	Numerator numerator.Generator

	// Recorder persists the document audit trail; nil disables recording
	Recorder audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Actor())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Wire repositories and services
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	orderRepo := document_repo.NewOrderRepo(cfg.TxManager)
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	settingsRepo := postgres.NewSettingsRepo(cfg.TxManager)

	productService := product.NewService(productRepo, cfg.TxManager)
	customerService := customer.NewService(customerRepo, cfg.TxManager)
	settingsService := settings.NewService(settingsRepo, cfg.TxManager)
	orderService := order.NewService(orderRepo, cfg.TxManager, cfg.Numerator, cfg.Recorder)
	invoiceService := invoice.NewService(invoiceRepo, orderRepo, cfg.TxManager, cfg.Numerator, settingsService, cfg.Recorder)

	productHandler := handlers.NewProductHandler(productService, settingsService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	orderHandler := handlers.NewOrderHandler(orderService, productService, settingsService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, settingsService)

	api := router.Group("/api/v1")
	{
		catalog := api.Group("/catalog")
		{
			products := catalog.Group("/products")
			{
				products.POST("", productHandler.Create)
				products.GET("", productHandler.List)
				products.GET("/:id", productHandler.Get)
				products.PUT("/:id", productHandler.Update)
				products.DELETE("/:id", productHandler.Delete)
			}

			customers := catalog.Group("/customers")
			{
				customers.POST("", customerHandler.Create)
				customers.GET("", customerHandler.List)
				customers.GET("/:id", customerHandler.Get)
				customers.PUT("/:id", customerHandler.Update)
				customers.DELETE("/:id", customerHandler.Delete)
			}
		}

		api.GET("/settings/exchange-rate", settingsHandler.GetExchangeRate)
		api.PUT("/settings/exchange-rate", settingsHandler.UpdateExchangeRate)

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.Submit)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
		}

		invoices := api.Group("/invoices")
		{
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("", invoiceHandler.List)
			invoices.GET("/:id", invoiceHandler.Get)
			invoices.POST("/:id/payments", invoiceHandler.RecordPayment)
		}
	}

	return router
}
