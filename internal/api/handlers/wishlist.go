package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/proxy"
	"github.com/gmartbd/storefront-api/internal/upstream"
)

// HandleWishlistCheck handles GET /api/wishlist/check/:slug.
//
// The backend signals "not in wishlist" with an error response, so every
// upstream failure is reported as a negative result instead of an error.
// That conflates real failures with legitimate negatives; the underlying
// error is logged at warn so operators can still tell them apart.
func HandleWishlistCheck(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Configured() {
			proxy.Fail(c, http.StatusInternalServerError, "server configuration error")
			return
		}

		slug := c.Param("slug")
		token := proxy.BearerToken(c)

		c.Header("Cache-Control", "no-store")

		resp, err := client.Get(c.Request.Context(), "/v2/wishlists-check-product/"+slug, token)
		if err != nil {
			logger.Warn("Wishlist check failed, reporting not wishlisted",
				zap.String("slug", slug),
				zap.Error(err),
			)
			c.JSON(http.StatusOK, gin.H{"result": true, "wishlisted": false})
			return
		}

		var payload struct {
			IsInWishlist bool `json:"is_in_wishlist"`
		}
		if err := resp.JSON(&payload); err != nil {
			logger.Warn("Wishlist check returned malformed body", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"result": true, "wishlisted": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": true, "wishlisted": payload.IsInWishlist})
	}
}
