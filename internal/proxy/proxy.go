package proxy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/upstream"
)

// AuthPolicy controls how a route treats the caller's bearer token.
type AuthPolicy int

const (
	// AuthNone ignores any token on the request.
	AuthNone AuthPolicy = iota
	// AuthOptional forwards a token when present and degrades to a public
	// call when absent.
	AuthOptional
	// AuthRequired short-circuits with 401 before any upstream call.
	AuthRequired
)

// Reshape rewrites a successful upstream body before it is relayed.
// Returning an error converts the result into a 500 envelope.
type Reshape func(status int, body []byte) (int, interface{}, error)

// Route describes one storefront endpoint as a mapping onto the backend.
// The repeated handler boilerplate (config check, token policy, outbound
// call, error envelope) lives once in Handler.
type Route struct {
	Name     string
	Method   string
	Path     string
	Auth     AuthPolicy
	Upstream func(c *gin.Context) string
	Reshape  Reshape
}

// BearerToken extracts the token from an Authorization header. Returns ""
// when the header is absent or not a bearer credential.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Fail writes the uniform failure envelope.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"result": false, "message": message})
}

// Handler builds the gin handler for a proxied route.
func Handler(client *upstream.Client, logger *zap.Logger, route Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Configured() {
			Fail(c, http.StatusInternalServerError, "server configuration error")
			return
		}

		token := BearerToken(c)
		if route.Auth == AuthRequired && token == "" {
			Fail(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if route.Auth == AuthNone {
			token = ""
		}

		var body interface{}
		if route.Method != http.MethodGet {
			raw, err := c.GetRawData()
			if err == nil && len(raw) > 0 {
				body = json.RawMessage(raw)
			}
		}

		// Proxied reads must never be cached between shoppers.
		c.Header("Cache-Control", "no-store")

		resp, err := client.Do(c.Request.Context(), route.Method, route.Upstream(c), token, body)
		if err != nil {
			RelayError(c, logger, route.Name, err)
			return
		}

		if route.Reshape != nil {
			status, payload, err := route.Reshape(resp.Status, resp.Body)
			if err != nil {
				logger.Error("Failed to reshape backend response",
					zap.String("route", route.Name),
					zap.Error(err),
				)
				Fail(c, http.StatusInternalServerError, "invalid backend response")
				return
			}
			c.JSON(status, payload)
			return
		}

		c.Data(resp.Status, "application/json", resp.Body)
	}
}

// RelayError converts an upstream failure into the failure envelope,
// keeping the upstream status code when one is known.
func RelayError(c *gin.Context, logger *zap.Logger, routeName string, err error) {
	if errors.Is(err, upstream.ErrNotConfigured) {
		Fail(c, http.StatusInternalServerError, "server configuration error")
		return
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		status := upErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		logger.Warn("Backend call failed",
			zap.String("route", routeName),
			zap.Int("status", status),
			zap.Error(err),
		)
		Fail(c, status, upErr.Message)
		return
	}

	logger.Error("Proxy call failed", zap.String("route", routeName), zap.Error(err))
	Fail(c, http.StatusInternalServerError, "internal error")
}
