package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/domain"
	"github.com/gmartbd/storefront-api/internal/proxy"
	"github.com/gmartbd/storefront-api/internal/upstream"
	"github.com/gmartbd/storefront-api/internal/useddevice"
)

// HandleUsedDevices handles GET /api/used-devices.
//
// The backend stores the page content as an iframe embed of a published
// spreadsheet. When a CSV export URL can be derived and fetched, the
// response carries a parsed table; otherwise csvData.success is false and
// the page falls back to rendering the raw iframe.
func HandleUsedDevices(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Configured() {
			proxy.Fail(c, http.StatusInternalServerError, "server configuration error")
			return
		}

		c.Header("Cache-Control", "no-store")

		resp, err := client.Get(c.Request.Context(), "/v2/pages/used-devices", "")
		if err != nil {
			proxy.RelayError(c, logger, "used-devices", err)
			return
		}

		var page struct {
			Data struct {
				Content string `json:"content"`
			} `json:"data"`
		}
		if err := resp.JSON(&page); err != nil {
			logger.Error("Used-devices page body is malformed", zap.Error(err))
			proxy.Fail(c, http.StatusInternalServerError, "invalid backend response")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"result":  true,
			"iframe":  page.Data.Content,
			"csvData": fetchTable(c, client, logger, page.Data.Content),
		})
	}
}

func fetchTable(c *gin.Context, client *upstream.Client, logger *zap.Logger, embed string) *domain.CSVTable {
	exportURL := useddevice.ExportURL(embed)
	if exportURL == "" {
		return &domain.CSVTable{Success: false}
	}

	raw, err := client.Fetch(c.Request.Context(), exportURL)
	if err != nil {
		logger.Warn("Sheet CSV fetch failed, falling back to iframe", zap.Error(err))
		return &domain.CSVTable{Success: false}
	}

	table, err := useddevice.ParseCSV(bytes.NewReader(raw))
	if err != nil {
		logger.Warn("Sheet CSV parse failed, falling back to iframe", zap.Error(err))
		return &domain.CSVTable{Success: false}
	}

	return table
}
