package router

import (
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/auth"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/handler"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/middleware"
)

// OrderRoutes mounts the admin order endpoints
func OrderRoutes(h *handler.OrderHandler) *DomainGroup {
	read := middleware.RequirePermission(auth.PermissionOrdersRead)
	transition := middleware.RequirePermission(auth.PermissionOrdersTransition)

	return NewDomainGroup("orders", "/orders").
		GET("/admin", read, h.List).
		GET("/admin/stats", read, h.Stats).
		GET("/:id", read, h.GetByID).
		PATCH("/:id/status", transition, h.UpdateStatus)
}

// MarketplaceRoutes mounts the Ginee log and sync endpoints
func MarketplaceRoutes(h *handler.MarketplaceHandler) *DomainGroup {
	read := middleware.RequirePermission(auth.PermissionMarketplaceRead)
	sync := middleware.RequirePermission(auth.PermissionMarketplaceSync)

	ginee := NewDomainGroup("ginee", "/ginee")
	ginee.Group("logs", "/logs").
		Use(read).
		GET("", h.ListLogs).
		GET("/:id", h.GetLog)
	ginee.Group("sync", "/sync").
		POST("/pull-product", sync, h.PullProduct).
		POST("/push-product", sync, h.PushProduct).
		POST("/pull-stock", sync, h.PullStock).
		POST("/push-order", sync, h.PushOrder).
		POST("/all", sync, h.SyncAll).
		GET("/status", read, h.SyncStatus)
	return ginee
}

// ProductRoutes mounts the product badge endpoint
func ProductRoutes(h *handler.MarketplaceHandler) *DomainGroup {
	return NewDomainGroup("products", "/products").
		GET("/:id/ginee-status", middleware.RequirePermission(auth.PermissionMarketplaceRead), h.ProductStatus)
}
