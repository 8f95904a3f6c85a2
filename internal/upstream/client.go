package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/config"
)

// ErrNotConfigured is returned when the client was built without a base URL
// or system key. Handlers convert it to a configuration-error envelope and
// never touch the transport.
var ErrNotConfigured = errors.New("upstream not configured")

// SystemKeyHeader carries the shared secret on every upstream call.
const SystemKeyHeader = "System-Key"

type Client struct {
	baseURL    string
	systemKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the commerce backend
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   baseURL,
		systemKey: cfg.SystemKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Configured reports whether the client can reach the backend at all.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.systemKey != ""
}

// SetTransport swaps the underlying transport. Tests use this to count
// outbound calls without a live backend.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// Response is a relayed upstream result.
type Response struct {
	Status int
	Body   []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode upstream body: %w", err)
	}
	return nil
}

// Error is a normalized upstream failure. Status is the upstream status
// code when known, 0 when the call never produced a response.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("upstream: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Do issues one call to baseURL+path with the system key attached. A
// non-empty token is forwarded as a bearer credential. A body is allowed on
// any method, including GET - the order-tracking endpoint requires one.
func (c *Client) Do(ctx context.Context, method, path, token string, body interface{}) (*Response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(SystemKeyHeader, c.systemKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "failed to read backend response", Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{
			Status:  resp.StatusCode,
			Message: extractMessage(respBody),
		}
	}

	return &Response{Status: resp.StatusCode, Body: respBody}, nil
}

// Get issues a GET without a body.
func (c *Client) Get(ctx context.Context, path, token string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, token, nil)
}

// Fetch issues a plain GET to an absolute URL with no backend headers.
// Used for the spreadsheet CSV export, which lives outside the backend.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "fetch failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Status: resp.StatusCode, Message: fmt.Sprintf("fetch failed with status %d", resp.StatusCode)}
	}

	return io.ReadAll(resp.Body)
}

// extractMessage pulls a human-readable message out of an upstream error
// payload. Backends are inconsistent about the field name.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		case payload.Msg != "":
			return payload.Msg
		}
	}
	return "backend request failed"
}
