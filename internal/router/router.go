package router

import (
	"github.com/gin-gonic/gin"

	"nfscan/internal/config"
	"nfscan/internal/handler"
	"nfscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("/extract", invoiceH.Extract)
	invoices.GET("", invoiceH.List)
	invoices.GET("/export", invoiceH.ExportXLSX)
	invoices.GET("/:id", invoiceH.GetByID)

	return r
}
