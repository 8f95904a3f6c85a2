package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/api/handlers"
	"github.com/gmartbd/storefront-api/internal/api/middleware"
	"github.com/gmartbd/storefront-api/internal/compare"
	"github.com/gmartbd/storefront-api/internal/config"
	"github.com/gmartbd/storefront-api/internal/proxy"
	"github.com/gmartbd/storefront-api/internal/session"
	"github.com/gmartbd/storefront-api/internal/upstream"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, client *upstream.Client, manager *compare.Manager, store session.Store, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit())
	router.Use(middleware.PromoteAuthCookie(cfg.Auth.CookieName))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiRoutes := router.Group("/api")
	apiRoutes.Use(middleware.Session())
	{
		// Uniform proxied routes
		for _, route := range proxyRoutes(cfg.AssetBaseURL) {
			apiRoutes.Handle(route.Method, route.Path, proxy.Handler(client, logger, route))
		}

		// Routes with behavior beyond the uniform proxy contract
		apiRoutes.GET("/wishlist/check/:slug", handlers.HandleWishlistCheck(client, logger))
		apiRoutes.POST("/order/track", handlers.HandleTrackOrder(client, logger))
		apiRoutes.GET("/used-devices", handlers.HandleUsedDevices(client, logger))

		// Session-scoped state
		apiRoutes.POST("/compare/add", handlers.HandleCompareAdd(manager, logger))
		apiRoutes.GET("/compare", handlers.HandleCompareList(manager, logger))
		apiRoutes.GET("/popup", handlers.HandlePopupStatus(store, logger))
		apiRoutes.POST("/popup/dismiss", handlers.HandlePopupDismiss(store, logger))
	}

	return router
}
