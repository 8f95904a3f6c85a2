package domain

// The storefront does not own these entities - they are the contracts the
// backend exposes and the pages depend on.

// Product is the detail-page contract.
type Product struct {
	ID             int64         `json:"id"`
	Slug           string        `json:"slug"`
	Name           string        `json:"name"`
	MainPrice      string        `json:"main_price"`
	StrokedPrice   string        `json:"stroked_price"`
	Discount       string        `json:"discount"`
	Rating         float64       `json:"rating"`
	Thumbnail      string        `json:"thumbnail_image"`
	Specifications []SpecSection `json:"specifications,omitempty"`
}

// SpecSection groups product attributes on the detail page.
type SpecSection struct {
	Title      string          `json:"title"`
	Attributes []SpecAttribute `json:"attributes"`
}

type SpecAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CategoryProduct is the reshaped listing-card contract: the backend sends
// currency-formatted price strings, the pages want numbers.
type CategoryProduct struct {
	ID           int64   `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	OldPrice     float64 `json:"oldPrice"`
	DisplayPrice string  `json:"display_price"`
	Discount     string  `json:"discount,omitempty"`
	Rating       float64 `json:"rating"`
	Thumbnail    string  `json:"thumbnail_image"`
}

// Coupon is read-only for the storefront.
type Coupon struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Discount     string `json:"discount"`
	DiscountType string `json:"discount_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	MinSpend     string `json:"min_spend"`
	MaxSpend     string `json:"max_spend"`
}

// WishlistItem references an upstream product.
type WishlistItem struct {
	ID      int64   `json:"id"`
	Product Product `json:"product"`
}

// ShippingAddress is upstream CRUD; the storefront only relays mutations.
type ShippingAddress struct {
	ID        int64  `json:"id"`
	Address   string `json:"address"`
	CountryID int64  `json:"country_id"`
	StateID   int64  `json:"state_id"`
	Phone     string `json:"phone"`
}

// ReviewSubmission is created once by the shopper; the backend is the
// system of record. Images arrive as base64 payloads and are passed
// through untouched.
type ReviewSubmission struct {
	ProductID int64    `json:"product_id" binding:"required"`
	Rating    float64  `json:"rating" binding:"required,min=1,max=5"`
	Comment   string   `json:"comment" binding:"required"`
	Images    []string `json:"images,omitempty"`
}

// CSVTable is the synthesized used-device sheet.
type CSVTable struct {
	Success bool       `json:"success"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}
