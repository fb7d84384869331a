package app

import (
	"github.com/berckan/domainwishlist/internal/config"
	"github.com/berckan/domainwishlist/internal/handlers"
	"github.com/berckan/domainwishlist/internal/wishlist"

	"github.com/gin-gonic/gin"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, c handlers.Checker, whois handlers.WhoisLookup, svc *wishlist.Service, st handlers.SettingsStore) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))

	api := r.Group("/api/v1")

	checkHandler := handlers.NewCheckHandler(c, whois)
	api.POST("/check", checkHandler.CheckDomain)
	api.POST("/check-bulk", checkHandler.CheckBulk)
	api.GET("/whois/:domain", checkHandler.Whois)

	registerWishlistRoutes(api, handlers.NewWishlistHandler(svc))
	registerSettingsRoutes(api, handlers.NewSettingsHandler(st))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Domain Wishlist",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func registerWishlistRoutes(api *gin.RouterGroup, h *handlers.WishlistHandler) {
	api.GET("/wishlist", h.List)
	api.POST("/wishlist", h.Create)
	api.GET("/wishlist/categories", h.Categories)
	api.POST("/wishlist/check", h.Check)
	api.POST("/wishlist/select-all", h.SelectAll)
	api.DELETE("/wishlist/selected", h.DeleteSelected)
	api.GET("/wishlist/:id", h.Get)
	api.PUT("/wishlist/:id", h.Update)
	api.POST("/wishlist/:id/notify", h.ToggleNotification)
	api.POST("/wishlist/:id/select", h.ToggleSelect)
}

func registerSettingsRoutes(api *gin.RouterGroup, h *handlers.SettingsHandler) {
	api.GET("/settings", h.List)
	api.GET("/settings/:key", h.Get)
	api.PUT("/settings/:key", h.Put)
	api.DELETE("/settings/:key", h.Delete)
}
