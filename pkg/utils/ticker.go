package utils

import (
	"strings"
)

// NormalizeTicker upper-cases a ticker symbol, trimming whitespace and a
// leading "$" (common in chat and social feeds).
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	t = strings.TrimPrefix(t, "$")
	return strings.TrimSpace(t)
}

// SplitTickers splits a comma-separated ticker list, normalizing each entry
// and dropping empties.
func SplitTickers(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := NormalizeTicker(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
