package yfinance

// --- Yahoo Finance API response types ---
// Only the fields the fetchers consume are declared; everything else in the
// payload is ignored by the decoder.

// yfError is the error object embedded in Yahoo envelope responses.
type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yfQuoteResponse wraps the v7 quote API response.
type yfQuoteResponse struct {
	QuoteResponse struct {
		Result []yfQuoteResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"quoteResponse"`
}

// yfQuoteResult carries the v7 quote fields we consume. The timestamp fields
// are pointers because absent and zero are distinct on the wire.
type yfQuoteResult struct {
	Symbol                 string `json:"symbol"`
	ShortName              string `json:"shortName"`
	EarningsTimestamp      *int64 `json:"earningsTimestamp"`
	EarningsTimestampStart *int64 `json:"earningsTimestampStart"`
	EarningsTimestampEnd   *int64 `json:"earningsTimestampEnd"`
	NextEarningsDate       *int64 `json:"nextEarningsDate"`
}

// yfQuoteSummaryResponse wraps the v10 quoteSummary API response.
type yfQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yfQuoteSummaryResult `json:"result"`
		Error  *yfError               `json:"error"`
	} `json:"quoteSummary"`
}

type yfQuoteSummaryResult struct {
	DefaultKeyStatistics *yfKeyStatistics  `json:"defaultKeyStatistics"`
	CalendarEvents       *yfCalendarEvents `json:"calendarEvents"`
}

// yfDateVal is Yahoo's {raw, fmt} wrapper for date fields; raw is epoch seconds.
type yfDateVal struct {
	Raw int64  `json:"raw"`
	Fmt string `json:"fmt"`
}

// yfFinVal is Yahoo's {raw, fmt} wrapper for numeric fields.
type yfFinVal struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yfKeyStatistics struct {
	MostRecentQuarter *yfDateVal `json:"mostRecentQuarter"`
	LastFiscalYearEnd *yfDateVal `json:"lastFiscalYearEnd"`
}

type yfCalendarEvents struct {
	Earnings *yfCalendarEarnings `json:"earnings"`
}

type yfCalendarEarnings struct {
	EarningsDate    []yfDateVal `json:"earningsDate"`
	EarningsAverage *yfFinVal   `json:"earningsAverage"`
	EarningsLow     *yfFinVal   `json:"earningsLow"`
	EarningsHigh    *yfFinVal   `json:"earningsHigh"`
	RevenueAverage  *yfFinVal   `json:"revenueAverage"`
}
