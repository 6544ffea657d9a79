// Package yfinance implements the Yahoo Finance data provider.
// It wraps Yahoo Finance's public APIs (v7 quote, v10 quoteSummary), the
// earnings calendar page, and the per-ticker RSS headline feed into the
// standard provider/fetcher framework.
//
// Yahoo Finance is a free, no-API-key provider.
package yfinance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/earncal/internal/infra"
	"github.com/seenimoa/earncal/internal/provider"
)

const providerName = "yfinance"

// Endpoint templates. Package vars so tests can point them at a local server.
var (
	quoteURL        = "https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s"
	quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=%s"
	calendarPageURL = "https://finance.yahoo.com/calendar/earnings?symbol=%s"
	headlineRSSURL  = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"
)

// Provider implements provider.Provider for Yahoo Finance.
type Provider struct {
	provider.BaseProvider
}

// New creates a new YFinance provider and registers all fetchers.
func New() *Provider {
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"Yahoo Finance - free earnings dates, estimates, and headlines",
			"https://finance.yahoo.com",
			nil, // no credentials required
		),
	}

	p.RegisterFetcher(newEarningsSummaryFetcher())
	p.RegisterFetcher(newEarningsCalendarFetcher())
	p.RegisterFetcher(newEarningsHistoryFetcher())
	p.RegisterFetcher(newCompanyNewsFetcher())

	return p
}

// Ping checks connectivity to Yahoo Finance.
func (p *Provider) Ping(ctx context.Context) error {
	url := fmt.Sprintf(quoteURL, "AAPL")
	body, _, err := infra.DoGet(ctx, url, jsonHeaders())
	if err != nil {
		return fmt.Errorf("yfinance ping: %w", err)
	}
	body.Close()
	return nil
}

// --- Shared helpers ---

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

// fetchJSON performs a GET request and decodes the response into dest.
func fetchJSON(ctx context.Context, url string, dest any) error {
	body, status, err := infra.DoGet(ctx, url, jsonHeaders())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if status >= 400 {
		return &infra.ErrHTTP{StatusCode: status, URL: url}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// cleanHTML strips markup from a snippet, returning the visible text.
func cleanHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// newResult creates a FetchResult with the current timestamp.
func newResult(data any) *provider.FetchResult {
	return &provider.FetchResult{
		Data:      data,
		FetchedAt: time.Now(),
	}
}

// newCachedResult creates a FetchResult marked as cached.
func newCachedResult(data any) *provider.FetchResult {
	return &provider.FetchResult{
		Data:      data,
		FetchedAt: time.Now(),
		Cached:    true,
	}
}
