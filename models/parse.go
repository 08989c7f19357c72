package models

import (
	"strconv"
	"strings"
	"unicode"
)

// IDOrdinal converts a listing ID to its numeric ordinal. Source IDs
// increase with posting time, so the ordinal orders listings by recency
// and bounds the seen-ID file. Non-numeric IDs map to 0.
func IDOrdinal(id string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseFloor extracts the current floor from labels like "4F/8F".
// Basement prefixes ("B1F") and labels with no digit residual ("RF/10F")
// both yield 0.
func parseFloor(floorName string) int {
	if floorName == "" {
		return 0
	}
	part, _, _ := strings.Cut(floorName, "/")
	part = strings.ToUpper(strings.TrimSpace(part))
	if strings.HasPrefix(part, "B") {
		return 0
	}

	var digits strings.Builder
	for _, r := range part {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// coercePrice maps the source price field — a JSON number, a digit string
// with optional thousands separators, or free text like "面議" — to an
// integer amount. ok is false when the value cannot be coerced; raw then
// carries the original text for display.
func coercePrice(v any) (price int, ok bool, raw string) {
	switch p := v.(type) {
	case nil:
		return 0, false, ""
	case float64:
		return int(p), true, ""
	case int:
		return p, true, ""
	case string:
		s := strings.TrimSpace(p)
		if s == "" {
			return 0, false, ""
		}
		cleaned := strings.ReplaceAll(s, ",", "")
		n, err := strconv.Atoi(cleaned)
		if err != nil {
			return 0, false, s
		}
		return n, true, ""
	default:
		return 0, false, ""
	}
}

// coerceArea maps the source area field (number or digit string) to a
// float, defaulting to 0 when unparseable. raw preserves the original
// string form for display fallback.
func coerceArea(v any) (area float64, raw string) {
	switch a := v.(type) {
	case float64:
		return a, ""
	case int:
		return float64(a), ""
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return 0, ""
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return 0, s
		}
		return f, s
	default:
		return 0, ""
	}
}

// asString renders a source identifier that may arrive as either a JSON
// number or a string.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatInt(int64(s), 10)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
