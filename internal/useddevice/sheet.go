package useddevice

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"

	"github.com/gmartbd/storefront-api/internal/domain"
)

// The used-device page content arrives from the backend as an iframe embed
// of a published Google Sheet. When the embed carries a pubhtml URL we can
// derive the CSV export of the same sheet and synthesize a real table.

var pubhtmlRe = regexp.MustCompile(`https://docs\.google\.com/spreadsheets/d/e/([A-Za-z0-9_-]+)/pubhtml`)

// ExportURL derives the CSV export URL from an iframe embed string.
// Returns "" when the embed does not reference a published sheet.
func ExportURL(embed string) string {
	match := pubhtmlRe.FindStringSubmatch(embed)
	if match == nil {
		return ""
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/e/%s/pub?output=csv", match[1])
}

// ParseCSV reads the sheet export into headers and rows. Quoted fields,
// including embedded commas and escaped quotes, follow standard CSV rules.
func ParseCSV(r io.Reader) (*domain.CSVTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet CSV is empty")
	}

	return &domain.CSVTable{
		Success: true,
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}
