package handlers

import (
	portssvc "github.com/ledback/ledback_backend/internal/core/ports/services"
	"github.com/ledback/ledback_backend/internal/middleware"
	"github.com/ledback/ledback_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerLedgerRoutes(r, services.LedgerSvc)
	registerEntryRoutes(r, services.EntrySvc)
	registerSyncRoutes(r, services.SyncSvc, rateLimit)
}

func registerLedgerRoutes(r *gin.Engine, svc portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(svc)

	// Listing serves the shared catalog to anonymous callers too.
	r.GET("/ledgers", middleware.OptionalIdentityMiddleware(), h.listLedgers)

	ledgers := r.Group("/ledgers", middleware.IdentityMiddleware())
	{
		ledgers.POST("", h.createLedger)
		ledgers.DELETE("/:id", h.deleteLedger)
		ledgers.GET("/:id/statement", h.getLedgerStatement)
	}
}

func registerEntryRoutes(r *gin.Engine, svc portssvc.EntrySvcFacade) {
	h := newEntryHandler(svc)

	entries := r.Group("/entries", middleware.IdentityMiddleware())
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}

	r.GET("/transactions", middleware.IdentityMiddleware(), h.listTransactions)
}

func registerSyncRoutes(r *gin.Engine, svc portssvc.SyncSvcFacade, rateLimit gin.HandlerFunc) {
	h := newSyncHandler(svc)

	sync := r.Group("/sync", middleware.IdentityMiddleware())
	if rateLimit != nil {
		sync.Use(rateLimit)
	}
	{
		sync.GET("/pull", h.pull)
		sync.POST("/push", h.push)
	}
}
