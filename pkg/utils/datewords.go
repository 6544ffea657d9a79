package utils

import (
	"fmt"
	"time"
)

// OrdinalSuffix returns the English ordinal suffix for a day of month.
// 11 through 13 take "th"; otherwise the last digit decides.
func OrdinalSuffix(day int) string {
	if d := day % 100; d >= 11 && d <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// DateInWords renders a date as e.g. "5th June, 2024" in the time's own zone.
func DateInWords(t time.Time) string {
	return fmt.Sprintf("%d%s %s, %d", t.Day(), OrdinalSuffix(t.Day()), t.Month().String(), t.Year())
}
