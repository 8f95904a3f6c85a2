package format

import "strings"

// NormalizeImageURL resolves the mix of absolute, protocol-relative and
// bare-path image references the backend emits into a usable URL.
// With an empty base, relative paths are returned as-is.
func NormalizeImageURL(base, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if base == "" {
		return raw
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(raw, "/")
}
