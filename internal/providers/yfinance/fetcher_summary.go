package yfinance

import (
	"context"
	"fmt"
	"time"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
)

// --- EarningsSummary fetcher ---

type earningsSummaryFetcher struct {
	provider.BaseFetcher
}

func newEarningsSummaryFetcher() *earningsSummaryFetcher {
	return &earningsSummaryFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelEarningsSummary,
			"Earnings timestamp fields and company name from Yahoo Finance",
			[]string{provider.ParamSymbol},
			nil,
			15*time.Minute, 5, time.Second,
		),
	}
}

func (f *earningsSummaryFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}

	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(quoteURL, symbol)

	var resp yfQuoteResponse
	if err := fetchJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("yfinance quote %s: %w", symbol, err)
	}

	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("quote %s: %w", symbol, provider.ErrTickerNotFound)
	}

	summary := buildSummary(symbol, resp.QuoteResponse.Result[0])

	// Merge the quoteSummary key statistics for the fiscal-period fields.
	// Best effort: the quote fields above are the primary source.
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}
	var sresp yfQuoteSummaryResponse
	sURL := fmt.Sprintf(quoteSummaryURL, symbol, "defaultKeyStatistics")
	if err := fetchJSON(ctx, sURL, &sresp); err == nil {
		mergeKeyStatistics(summary, sresp)
	}

	f.CacheSetTTL(cacheKey, summary, 15*time.Minute)
	return newResult(summary), nil
}

// buildSummary maps a v7 quote result onto the summary model. Absent or
// zero-valued timestamp fields are left out of the Fields map entirely.
func buildSummary(symbol string, q yfQuoteResult) *models.EarningsSummary {
	s := &models.EarningsSummary{
		Symbol:  symbol,
		Company: q.ShortName,
		Fields:  make(map[string]int64),
	}
	putField(s.Fields, models.FieldEarningsTimestamp, q.EarningsTimestamp)
	putField(s.Fields, models.FieldEarningsTimestampStart, q.EarningsTimestampStart)
	putField(s.Fields, models.FieldEarningsTimestampEnd, q.EarningsTimestampEnd)
	putField(s.Fields, models.FieldNextEarningsDate, q.NextEarningsDate)
	return s
}

// mergeKeyStatistics folds defaultKeyStatistics date fields into the summary.
func mergeKeyStatistics(s *models.EarningsSummary, resp yfQuoteSummaryResponse) {
	if resp.QuoteSummary.Error != nil || len(resp.QuoteSummary.Result) == 0 {
		return
	}
	ks := resp.QuoteSummary.Result[0].DefaultKeyStatistics
	if ks == nil {
		return
	}
	putDateVal(s.Fields, models.FieldMostRecentQuarter, ks.MostRecentQuarter)
	putDateVal(s.Fields, models.FieldLastFiscalYearEnd, ks.LastFiscalYearEnd)
}

func putField(fields map[string]int64, name string, v *int64) {
	if v != nil && *v != 0 {
		fields[name] = *v
	}
}

func putDateVal(fields map[string]int64, name string, v *yfDateVal) {
	if v != nil && v.Raw != 0 {
		fields[name] = v.Raw
	}
}
