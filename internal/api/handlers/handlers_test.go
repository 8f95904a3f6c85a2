package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/api/middleware"
	"github.com/gmartbd/storefront-api/internal/compare"
	"github.com/gmartbd/storefront-api/internal/config"
	"github.com/gmartbd/storefront-api/internal/session"
	"github.com/gmartbd/storefront-api/internal/upstream"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// routeTransport serves canned responses keyed by request path.
type routeTransport struct {
	responses map[string]routeResponse
}

type routeResponse struct {
	status int
	body   string
}

func (t *routeTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, ok := t.responses[r.URL.Path]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(`{"message":"not found"}`)),
			Header:     make(http.Header),
		}, nil
	}
	status := resp.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(http.Header),
	}, nil
}

func stubClient(responses map[string]routeResponse) *upstream.Client {
	client := upstream.NewClient(config.UpstreamConfig{BaseURL: "http://backend.test", SystemKey: "k"}, zap.NewNop())
	client.SetTransport(&routeTransport{responses: responses})
	return client
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWishlistCheckPositive(t *testing.T) {
	client := stubClient(map[string]routeResponse{
		"/v2/wishlists-check-product/phone-a": {body: `{"is_in_wishlist":true}`},
	})

	r := gin.New()
	r.GET("/api/wishlist/check/:slug", HandleWishlistCheck(client, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/api/wishlist/check/phone-a", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["result"])
	assert.Equal(t, true, body["wishlisted"])
}

func TestWishlistCheckSuppressesUpstreamErrors(t *testing.T) {
	client := stubClient(map[string]routeResponse{
		"/v2/wishlists-check-product/phone-a": {status: http.StatusInternalServerError, body: `{"message":"boom"}`},
	})

	r := gin.New()
	r.GET("/api/wishlist/check/:slug", HandleWishlistCheck(client, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/api/wishlist/check/phone-a", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "upstream failures must not surface as errors")
	body := decode(t, w)
	assert.Equal(t, true, body["result"])
	assert.Equal(t, false, body["wishlisted"])
}

func TestCategoryReshaperParsesPriceStrings(t *testing.T) {
	upstreamBody := `{
		"data": [
			{"id":1,"slug":"phone-a","name":"Phone A","main_price":"৳1,00,500","stroked_price":"৳1,20,000","rating":4.5,"thumbnail_image":"uploads/a.jpg"},
			{"id":2,"slug":"phone-b","name":"Phone B","main_price":"৳55,000","stroked_price":"","rating":4.0,"thumbnail_image":"https://img.example.com/b.jpg"}
		],
		"meta": {"current_page":1}
	}`

	reshape := CategoryReshaper("https://cdn.example.com")
	status, payload, err := reshape(http.StatusOK, []byte(upstreamBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	out := payload.(map[string]interface{})
	assert.Equal(t, true, out["result"])

	raw, err := json.Marshal(out["data"])
	require.NoError(t, err)
	var parsed []struct {
		Price        float64 `json:"price"`
		OldPrice     float64 `json:"oldPrice"`
		DisplayPrice string  `json:"display_price"`
		Thumbnail    string  `json:"thumbnail_image"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, float64(100500), parsed[0].Price)
	assert.Equal(t, float64(120000), parsed[0].OldPrice)
	assert.Equal(t, "1,00,500", parsed[0].DisplayPrice)
	assert.Equal(t, "https://cdn.example.com/uploads/a.jpg", parsed[0].Thumbnail)
	assert.Equal(t, float64(55000), parsed[1].Price)
	assert.Equal(t, float64(0), parsed[1].OldPrice)
	assert.Equal(t, "55,000", parsed[1].DisplayPrice)
	assert.Equal(t, "https://img.example.com/b.jpg", parsed[1].Thumbnail)
}

func TestCategoryReshaperRejectsMalformedBody(t *testing.T) {
	reshape := CategoryReshaper("")
	_, _, err := reshape(http.StatusOK, []byte("not json"))
	assert.Error(t, err)
}

func TestTrackOrderForwardsBodyOnGet(t *testing.T) {
	var gotMethod string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"result":true,"data":{"status":"shipped"}}`))
	}))
	defer srv.Close()

	client := upstream.NewClient(config.UpstreamConfig{BaseURL: srv.URL, SystemKey: "k"}, zap.NewNop())
	r := gin.New()
	r.POST("/api/order/track", HandleTrackOrder(client, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/api/order/track", bytes.NewBufferString(`{"order_code":"ORD-9"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.MethodGet, gotMethod, "the backend contract requires GET")
	assert.Contains(t, string(gotBody), "ORD-9")
}

func TestTrackOrderMissingCode(t *testing.T) {
	client := stubClient(nil)
	r := gin.New()
	r.POST("/api/order/track", HandleTrackOrder(client, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/api/order/track", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsedDevicesSynthesizesTable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/pages/used-devices" {
			http.NotFound(w, r)
			return
		}
		embed := `<iframe src="https://docs.google.com/spreadsheets/d/e/2PACX-abc123/pubhtml?gid=0"></iframe>`
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"content": embed},
		})
	}))
	defer backend.Close()

	client := upstream.NewClient(config.UpstreamConfig{BaseURL: backend.URL, SystemKey: "k"}, zap.NewNop())
	// Intercept the sheet export fetch, which leaves the backend host.
	client.SetTransport(sheetAwareTransport{})

	r := gin.New()
	r.GET("/api/used-devices", HandleUsedDevices(client, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/used-devices", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	csvData := body["csvData"].(map[string]interface{})
	assert.Equal(t, true, csvData["success"])
	headers := csvData["headers"].([]interface{})
	assert.Equal(t, "Model", headers[0])
}

func TestUsedDevicesFallsBackToIframe(t *testing.T) {
	client := stubClient(map[string]routeResponse{
		"/v2/pages/used-devices": {body: `{"data":{"content":"<iframe src=\"https://example.com/devices\"></iframe>"}}`},
	})

	r := gin.New()
	r.GET("/api/used-devices", HandleUsedDevices(client, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/used-devices", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	csvData := body["csvData"].(map[string]interface{})
	assert.Equal(t, false, csvData["success"])
	assert.Contains(t, body["iframe"], "example.com/devices")
}

// sheetAwareTransport sends docs.google.com requests a canned CSV and
// passes everything else through to the test backend.
type sheetAwareTransport struct{}

func (t sheetAwareTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.URL.Host == "docs.google.com" {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("Model,Price\niPhone 12,\"৳45,000\"\n")),
			Header:     make(http.Header),
		}, nil
	}
	return http.DefaultTransport.RoundTrip(r)
}

func sessionRouter(register func(r *gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	group := r.Group("/api")
	group.Use(middleware.Session())
	register(group)
	return r
}

func TestCompareAddReturnsOrderedSlugsAndURL(t *testing.T) {
	manager := compare.NewManager(session.NewMemoryStore(), zap.NewNop())
	r := sessionRouter(func(g *gin.RouterGroup) {
		g.POST("/compare/add", HandleCompareAdd(manager, zap.NewNop()))
	})

	cookie := &http.Cookie{Name: middleware.SessionCookie, Value: "sess-1"}

	for _, slug := range []string{"phone-a", "phone-b"} {
		req := httptest.NewRequest(http.MethodPost, "/api/compare/add", bytes.NewBufferString(fmt.Sprintf(`{"slug":%q}`, slug)))
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/compare/add", bytes.NewBufferString(`{"slug":"phone-c"}`))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := decode(t, w)
	slugs := body["slugs"].([]interface{})
	assert.Equal(t, []interface{}{"phone-b", "phone-c"}, slugs)
	assert.Equal(t, "/compare?product1=phone-b&product2=phone-c", body["compare_url"])
}

func TestCompareAddMissingSlug(t *testing.T) {
	manager := compare.NewManager(session.NewMemoryStore(), zap.NewNop())
	r := sessionRouter(func(g *gin.RouterGroup) {
		g.POST("/compare/add", HandleCompareAdd(manager, zap.NewNop()))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/compare/add", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPopupDismissalIsOncePerSession(t *testing.T) {
	store := session.NewMemoryStore()
	r := sessionRouter(func(g *gin.RouterGroup) {
		g.GET("/popup", HandlePopupStatus(store, zap.NewNop()))
		g.POST("/popup/dismiss", HandlePopupDismiss(store, zap.NewNop()))
	})

	cookie := &http.Cookie{Name: middleware.SessionCookie, Value: "sess-9"}

	req := httptest.NewRequest(http.MethodGet, "/api/popup", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, true, decode(t, w)["show"])

	req = httptest.NewRequest(http.MethodPost, "/api/popup/dismiss", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/popup", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, false, decode(t, w)["show"])
}
