package yfinance

import (
	"context"
	"fmt"
	"time"

	"github.com/guregu/null/v6"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
)

// --- EarningsCalendar fetcher ---

type earningsCalendarFetcher struct {
	provider.BaseFetcher
}

func newEarningsCalendarFetcher() *earningsCalendarFetcher {
	return &earningsCalendarFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelEarningsCalendar,
			"Upcoming earnings window and analyst estimates from Yahoo Finance",
			[]string{provider.ParamSymbol},
			nil,
			15*time.Minute, 5, time.Second,
		),
	}
}

func (f *earningsCalendarFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}

	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(quoteSummaryURL, symbol, "calendarEvents")

	var resp yfQuoteSummaryResponse
	if err := fetchJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("yfinance calendar %s: %w", symbol, err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("calendar %s: %w", symbol, provider.ErrTickerNotFound)
	}

	ce := resp.QuoteSummary.Result[0].CalendarEvents
	if ce == nil || ce.Earnings == nil {
		return nil, fmt.Errorf("calendar %s: %w", symbol, provider.ErrNoData)
	}

	cal := buildCalendar(symbol, ce.Earnings)
	f.CacheSetTTL(cacheKey, cal, 15*time.Minute)
	return newResult(cal), nil
}

// buildCalendar maps the calendarEvents earnings block onto the calendar model.
// Timestamps are converted from epoch seconds to UTC instants.
func buildCalendar(symbol string, e *yfCalendarEarnings) *models.EarningsCalendar {
	cal := &models.EarningsCalendar{Symbol: symbol}

	for _, d := range e.EarningsDate {
		if d.Raw != 0 {
			cal.EarningsDates = append(cal.EarningsDates, time.Unix(d.Raw, 0).UTC())
		}
	}

	cal.EarningsAvg = nullFloat(e.EarningsAverage)
	cal.EarningsLow = nullFloat(e.EarningsLow)
	cal.EarningsHigh = nullFloat(e.EarningsHigh)
	if e.RevenueAverage != nil {
		cal.RevenueAvg = null.IntFrom(int64(e.RevenueAverage.Raw))
	}
	return cal
}

func nullFloat(v *yfFinVal) null.Float {
	if v == nil {
		return null.Float{}
	}
	return null.FloatFrom(v.Raw)
}
