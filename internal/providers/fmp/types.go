package fmp

// --- FMP API response types ---

// fmpEarningsRow is one row of the earning_calendar endpoints. FMP returns
// both past and scheduled announcements in the same shape; actual figures are
// null until the company reports.
type fmpEarningsRow struct {
	Date             string   `json:"date"`
	Symbol           string   `json:"symbol"`
	EPS              *float64 `json:"eps"`
	EPSEstimated     *float64 `json:"epsEstimated"`
	Time             string   `json:"time"`
	Revenue          *int64   `json:"revenue"`
	RevenueEstimated *int64   `json:"revenueEstimated"`
	FiscalDateEnding string   `json:"fiscalDateEnding"`
}

// fmpQuote is the subset of the /quote endpoint used for company lookups.
type fmpQuote struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Exchange          string  `json:"exchange"`
	EarningsAnnounce  string  `json:"earningsAnnouncement"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
	Timestamp         int64   `json:"timestamp"`
}

// fmpStockNews is one article from the /stock_news endpoint.
type fmpStockNews struct {
	Symbol        string `json:"symbol"`
	PublishedDate string `json:"publishedDate"`
	Title         string `json:"title"`
	Image         string `json:"image"`
	Site          string `json:"site"`
	Text          string `json:"text"`
	URL           string `json:"url"`
}
