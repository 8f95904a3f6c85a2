package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmartbd/storefront-api/internal/api/handlers"
	"github.com/gmartbd/storefront-api/internal/proxy"
)

// The storefront surface is one route per backend resource. Everything
// that follows the uniform contract (config check, token policy, relay,
// error envelope) is a table entry; the handlers package covers the
// routes that need more than that.

func fixed(path string) func(c *gin.Context) string {
	return func(c *gin.Context) string {
		return withQuery(c, path)
	}
}

func byParam(prefix, name string) func(c *gin.Context) string {
	return func(c *gin.Context) string {
		return withQuery(c, prefix+c.Param(name))
	}
}

func withQuery(c *gin.Context, path string) string {
	if q := c.Request.URL.RawQuery; q != "" {
		return path + "?" + q
	}
	return path
}

func proxyRoutes(assetBaseURL string) []proxy.Route {
	return []proxy.Route{
		// Catalog
		{Name: "product-detail", Method: http.MethodGet, Path: "/products/:slug", Auth: proxy.AuthOptional, Upstream: byParam("/v2/products/", "slug")},
		{Name: "category-listing", Method: http.MethodGet, Path: "/categories/:slug/products", Auth: proxy.AuthNone, Upstream: byParam("/v2/products/category/", "slug"), Reshape: handlers.CategoryReshaper(assetBaseURL)},
		{Name: "flash-sale", Method: http.MethodGet, Path: "/flash-sale", Auth: proxy.AuthNone, Upstream: fixed("/v2/flash-deals")},
		{Name: "last-viewed", Method: http.MethodGet, Path: "/last-viewed", Auth: proxy.AuthOptional, Upstream: fixed("/v2/products/last-viewed")},
		{Name: "brands", Method: http.MethodGet, Path: "/brands", Auth: proxy.AuthNone, Upstream: fixed("/v2/brands")},
		{Name: "banners", Method: http.MethodGet, Path: "/banners", Auth: proxy.AuthNone, Upstream: fixed("/v2/sliders")},
		{Name: "categories", Method: http.MethodGet, Path: "/categories", Auth: proxy.AuthNone, Upstream: fixed("/v2/categories")},

		// Coupons degrade to the public list without a token.
		{Name: "coupons", Method: http.MethodGet, Path: "/coupons", Auth: proxy.AuthOptional, Upstream: fixed("/v2/coupons")},

		// Account
		{Name: "profile", Method: http.MethodGet, Path: "/profile", Auth: proxy.AuthRequired, Upstream: fixed("/v2/profile")},
		{Name: "purchase-history", Method: http.MethodGet, Path: "/purchase-history", Auth: proxy.AuthRequired, Upstream: fixed("/v2/purchase-history")},

		// Wishlist (check lives in handlers - it suppresses upstream errors)
		{Name: "wishlist-list", Method: http.MethodGet, Path: "/wishlist", Auth: proxy.AuthRequired, Upstream: fixed("/v2/wishlists")},
		{Name: "wishlist-remove", Method: http.MethodDelete, Path: "/wishlist/:slug", Auth: proxy.AuthRequired, Upstream: byParam("/v2/wishlists-remove-product/", "slug")},

		// Shipping addresses
		{Name: "address-list", Method: http.MethodGet, Path: "/shipping-addresses", Auth: proxy.AuthRequired, Upstream: fixed("/v2/user/shipping/address")},
		{Name: "address-create", Method: http.MethodPost, Path: "/shipping-addresses", Auth: proxy.AuthRequired, Upstream: fixed("/v2/user/shipping/create")},
		{Name: "address-update", Method: http.MethodPut, Path: "/shipping-addresses/:id", Auth: proxy.AuthRequired, Upstream: byParam("/v2/user/shipping/update/", "id")},
		{Name: "address-delete", Method: http.MethodDelete, Path: "/shipping-addresses/:id", Auth: proxy.AuthRequired, Upstream: byParam("/v2/user/shipping/delete/", "id")},

		// Reviews
		{Name: "reviews-product", Method: http.MethodGet, Path: "/reviews/product/:id", Auth: proxy.AuthNone, Upstream: byParam("/v2/reviews/product/", "id")},
		{Name: "reviews-pending", Method: http.MethodGet, Path: "/reviews/pending", Auth: proxy.AuthRequired, Upstream: fixed("/v2/reviews/pending")},
		{Name: "review-submit", Method: http.MethodPost, Path: "/reviews", Auth: proxy.AuthRequired, Upstream: fixed("/v2/reviews/submit")},

		// Static-ish backend pages
		{Name: "page-contact", Method: http.MethodGet, Path: "/pages/contact", Auth: proxy.AuthNone, Upstream: fixed("/v2/pages/contact-us")},
		{Name: "page-careers", Method: http.MethodGet, Path: "/pages/careers", Auth: proxy.AuthNone, Upstream: fixed("/v2/pages/careers")},
		{Name: "page-corporate", Method: http.MethodGet, Path: "/pages/corporate", Auth: proxy.AuthNone, Upstream: fixed("/v2/pages/corporate")},
		{Name: "page-bank-details", Method: http.MethodGet, Path: "/pages/bank-details", Auth: proxy.AuthNone, Upstream: fixed("/v2/pages/bank-details")},
		{Name: "page-emi", Method: http.MethodGet, Path: "/pages/emi", Auth: proxy.AuthNone, Upstream: fixed("/v2/pages/emi")},

		// Checkout-adjacent lookups
		{Name: "countries", Method: http.MethodGet, Path: "/countries", Auth: proxy.AuthNone, Upstream: fixed("/v2/countries")},
		{Name: "states", Method: http.MethodGet, Path: "/states/:countryID", Auth: proxy.AuthNone, Upstream: byParam("/v2/states-by-country/", "countryID")},
		{Name: "pickup-list", Method: http.MethodGet, Path: "/pickup-points", Auth: proxy.AuthNone, Upstream: fixed("/v2/pickup-list")},
		{Name: "pickup-point", Method: http.MethodGet, Path: "/pickup-points/:id", Auth: proxy.AuthNone, Upstream: byParam("/v2/pickup-point/", "id")},
		{Name: "payment-types", Method: http.MethodGet, Path: "/payment-types", Auth: proxy.AuthNone, Upstream: fixed("/v2/payment-types")},
		{Name: "payment-init", Method: http.MethodPost, Path: "/payment/sslcommerz", Auth: proxy.AuthRequired, Upstream: fixed("/v2/sslcommerz/begin")},

		// Misc storefront content
		{Name: "social-numbers", Method: http.MethodGet, Path: "/social-numbers", Auth: proxy.AuthNone, Upstream: fixed("/v2/social-numbers")},
	}
}
