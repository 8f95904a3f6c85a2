package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/api/middleware"
	"github.com/gmartbd/storefront-api/internal/compare"
	"github.com/gmartbd/storefront-api/internal/proxy"
)

// CompareAddRequest names the product to mark for comparison.
type CompareAddRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// HandleCompareAdd handles POST /api/compare/add. The response includes
// the comparison view URL with product identifiers in list order, so the
// caller can redirect straight to it.
func HandleCompareAdd(manager *compare.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompareAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			proxy.Fail(c, http.StatusBadRequest, "slug is required")
			return
		}

		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			proxy.Fail(c, http.StatusBadRequest, "missing session")
			return
		}

		slugs, err := manager.Add(c.Request.Context(), sessionID, req.Slug)
		if err != nil {
			logger.Error("Failed to update compare list", zap.Error(err))
			proxy.Fail(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"result":      true,
			"slugs":       slugs,
			"compare_url": compareURL(slugs),
		})
	}
}

// HandleCompareList handles GET /api/compare.
func HandleCompareList(manager *compare.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			proxy.Fail(c, http.StatusBadRequest, "missing session")
			return
		}

		slugs, err := manager.List(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load compare list", zap.Error(err))
			proxy.Fail(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"result":      true,
			"slugs":       slugs,
			"compare_url": compareURL(slugs),
		})
	}
}

func compareURL(slugs []string) string {
	if len(slugs) == 0 {
		return "/compare"
	}
	q := url.Values{}
	for i, slug := range slugs {
		q.Set(fmt.Sprintf("product%d", i+1), slug)
	}
	return "/compare?" + q.Encode()
}
