package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/proxy"
	"github.com/gmartbd/storefront-api/internal/upstream"
)

// TrackOrderRequest carries the code printed on the order confirmation.
type TrackOrderRequest struct {
	OrderCode string `json:"order_code" binding:"required"`
}

// HandleTrackOrder handles POST /api/order/track.
//
// The backend's tracking endpoint expects a GET carrying a JSON body.
// Non-standard, but that is the upstream contract.
func HandleTrackOrder(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Configured() {
			proxy.Fail(c, http.StatusInternalServerError, "server configuration error")
			return
		}

		var req TrackOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			proxy.Fail(c, http.StatusBadRequest, "order_code is required")
			return
		}

		c.Header("Cache-Control", "no-store")

		resp, err := client.Do(c.Request.Context(), http.MethodGet, "/v2/order-track", proxy.BearerToken(c), req)
		if err != nil {
			proxy.RelayError(c, logger, "order-track", err)
			return
		}

		c.Data(resp.Status, "application/json", resp.Body)
	}
}
