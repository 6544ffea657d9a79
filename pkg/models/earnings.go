// Package models defines the core data structures used throughout earncal.
package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// Summary timestamp fields as reported by quote providers. Absent fields are
// absent map keys; zero epochs are never stored.
const (
	FieldEarningsTimestamp      = "earningsTimestamp"
	FieldNextEarningsDate       = "nextEarningsDate"
	FieldMostRecentQuarter      = "mostRecentQuarter"
	FieldLastFiscalYearEnd      = "lastFiscalYearEnd"
	FieldEarningsTimestampStart = "earningsTimestampStart"
	FieldEarningsTimestampEnd   = "earningsTimestampEnd"
)

// ResolvedEarnings is the outcome of resolving one ticker's next earnings
// announcement. Company always carries a display name (falling back to the
// ticker itself); the timestamp and the derived strings are set only when a
// date was found. A record either fully resolves or fully fails.
type ResolvedEarnings struct {
	Ticker    string    `json:"ticker"`     // normalized, e.g., "AAPL"
	Company   string    `json:"company"`    // e.g., "Apple Inc."
	Timestamp null.Time `json:"timestamp"`  // Eastern Time
	DateISO   string    `json:"date_iso"`   // e.g., "2024-06-05"
	DateWords string    `json:"date_words"` // e.g., "5th June, 2024"
	TimeStr   string    `json:"time_str"`   // e.g., "16:30:00 EDT"
}

// Resolved reports whether an announcement timestamp was found.
func (r ResolvedEarnings) Resolved() bool {
	return r.Timestamp.Valid
}

// EarningsSummary carries the candidate timestamp fields from a provider's
// quote summary for one symbol. Values are epoch seconds UTC.
type EarningsSummary struct {
	Symbol  string           `json:"symbol"`
	Company string           `json:"company,omitempty"`
	Fields  map[string]int64 `json:"fields,omitempty"`
}

// EarningsCalendar is a provider's forward earnings calendar for one symbol.
type EarningsCalendar struct {
	Symbol        string      `json:"symbol"`
	EarningsDates []time.Time `json:"earnings_dates,omitempty"` // earliest first
	EarningsAvg   null.Float  `json:"earnings_avg"`
	EarningsLow   null.Float  `json:"earnings_low"`
	EarningsHigh  null.Float  `json:"earnings_high"`
	RevenueAvg    null.Int    `json:"revenue_avg"`
}

// EarningsEvent is one historical earnings announcement.
type EarningsEvent struct {
	Symbol      string     `json:"symbol"`
	Date        time.Time  `json:"date"`
	EPSEstimate null.Float `json:"eps_estimate"`
	EPSActual   null.Float `json:"eps_actual"`
	Surprise    null.Float `json:"surprise_pct"`
}
