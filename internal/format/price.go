package format

import (
	"strconv"
	"strings"
)

// FormatPrice renders a number with South Asian digit grouping: the last
// three digits form one group, every group above that has two digits.
// 201512 becomes "2,01,512". String input that does not parse as a number
// is returned unchanged.
func FormatPrice(v interface{}) string {
	switch n := v.(type) {
	case int:
		return groupDigits(strconv.FormatInt(int64(n), 10))
	case int64:
		return groupDigits(strconv.FormatInt(n, 10))
	case float64:
		return groupDigits(strconv.FormatFloat(n, 'f', -1, 64))
	case string:
		if _, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return n
		}
		return groupDigits(strings.TrimSpace(n))
	default:
		return ""
	}
}

// ParseAmount extracts a numeric amount from a currency-formatted string
// such as "৳1,00,500". Every rune except digits and the decimal point is
// stripped before parsing. The second return is false when nothing numeric
// remains.
func ParseAmount(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	head := intPart[:len(intPart)-3]
	tail := intPart[len(intPart)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)

	return sign + strings.Join(groups, ",") + fracPart
}
