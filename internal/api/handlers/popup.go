package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/api/middleware"
	"github.com/gmartbd/storefront-api/internal/proxy"
	"github.com/gmartbd/storefront-api/internal/session"
)

// HandlePopupStatus handles GET /api/popup. The promotional popup shows
// once per session until the shopper dismisses it.
func HandlePopupStatus(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			proxy.Fail(c, http.StatusBadRequest, "missing session")
			return
		}

		dismissed, err := store.PopupDismissed(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to read popup flag", zap.Error(err))
			proxy.Fail(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": true, "show": !dismissed})
	}
}

// HandlePopupDismiss handles POST /api/popup/dismiss.
func HandlePopupDismiss(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			proxy.Fail(c, http.StatusBadRequest, "missing session")
			return
		}

		if err := store.DismissPopup(c.Request.Context(), sessionID); err != nil {
			logger.Error("Failed to persist popup dismissal", zap.Error(err))
			proxy.Fail(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": true})
	}
}
