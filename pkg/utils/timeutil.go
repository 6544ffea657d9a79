package utils

import (
	"time"
)

// Eastern is the US Eastern Time location (America/New_York). All earnings
// dates are rendered and sorted in this zone.
var Eastern *time.Location

func init() {
	var err error
	Eastern, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		Eastern = time.FixedZone("EST", -5*60*60)
	}
}

// NowEastern returns the current time in US Eastern Time.
func NowEastern() time.Time {
	return time.Now().In(Eastern)
}

// ToEastern converts a time.Time to US Eastern Time.
func ToEastern(t time.Time) time.Time {
	return t.In(Eastern)
}

// FromEpoch converts Unix seconds to a UTC time.Time.
func FromEpoch(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// ParseDateEastern parses a YYYY-MM-DD string as a calendar date in Eastern Time.
func ParseDateEastern(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Eastern)
}

// FormatDateEastern formats a time as YYYY-MM-DD in Eastern Time.
func FormatDateEastern(t time.Time) string {
	return t.In(Eastern).Format("2006-01-02")
}

// FormatClockEastern formats the wall-clock portion of a time in Eastern Time
// with the zone abbreviation, e.g. "16:30:00 EST".
func FormatClockEastern(t time.Time) string {
	return t.In(Eastern).Format("15:04:05 MST")
}
