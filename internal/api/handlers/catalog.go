package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gmartbd/storefront-api/internal/domain"
	"github.com/gmartbd/storefront-api/internal/format"
)

// categoryListing mirrors the backend's category response. Price fields
// arrive as currency-formatted strings.
type categoryListing struct {
	Data []struct {
		ID           int64   `json:"id"`
		Slug         string  `json:"slug"`
		Name         string  `json:"name"`
		MainPrice    string  `json:"main_price"`
		StrokedPrice string  `json:"stroked_price"`
		Discount     string  `json:"discount"`
		Rating       float64 `json:"rating"`
		Thumbnail    string  `json:"thumbnail_image"`
	} `json:"data"`
	Meta json.RawMessage `json:"meta"`
}

// CategoryReshaper converts backend price strings like "৳1,00,500" into
// numeric price/oldPrice fields the listing cards sort and filter on, and
// normalizes thumbnail URLs against the asset base.
func CategoryReshaper(assetBaseURL string) func(status int, body []byte) (int, interface{}, error) {
	return func(status int, body []byte) (int, interface{}, error) {
		var listing categoryListing
		if err := json.Unmarshal(body, &listing); err != nil {
			return 0, nil, fmt.Errorf("failed to decode category listing: %w", err)
		}

		products := make([]domain.CategoryProduct, 0, len(listing.Data))
		for _, p := range listing.Data {
			price, _ := format.ParseAmount(p.MainPrice)
			oldPrice, _ := format.ParseAmount(p.StrokedPrice)

			products = append(products, domain.CategoryProduct{
				ID:           p.ID,
				Slug:         p.Slug,
				Name:         p.Name,
				Price:        price,
				OldPrice:     oldPrice,
				DisplayPrice: format.FormatPrice(price),
				Discount:     p.Discount,
				Rating:       p.Rating,
				Thumbnail:    format.NormalizeImageURL(assetBaseURL, p.Thumbnail),
			})
		}

		payload := map[string]interface{}{
			"result": true,
			"data":   products,
		}
		if len(listing.Meta) > 0 {
			payload["meta"] = listing.Meta
		}

		return status, payload, nil
	}
}
